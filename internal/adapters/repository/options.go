package repository

import "time"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithClock sets the time source used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// LoaderOption applies a configuration option to the FileLoader.
type LoaderOption func(*FileLoader)

// WithRefreshInterval sets how long a load stays fresh.
// Zero means files are read once.
func WithRefreshInterval(interval time.Duration) LoaderOption {
	return func(l *FileLoader) {
		if interval >= 0 {
			l.interval = interval
		}
	}
}

// WithLoaderClock sets the time source used by Stale.
func WithLoaderClock(now func() time.Time) LoaderOption {
	return func(l *FileLoader) {
		if now != nil {
			l.now = now
		}
	}
}
