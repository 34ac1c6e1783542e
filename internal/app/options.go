package service

import (
	"time"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/adapters/repository"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/metric"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/workbook"
	"github.com/dagoperezh-lgtm/athlos-360-app/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithFileLoader sets a loader that refreshes the store from disk before
// reports are served.
func WithFileLoader(l *repository.FileLoader) Option {
	return func(s *Service) {
		s.loader = l
	}
}

// WithMetricTable sets the metric table reports are built from.
func WithMetricTable(t *metric.Table) Option {
	return func(s *Service) {
		if t != nil {
			s.table = t
		}
	}
}

// WithResolver sets the sheet and column resolver.
func WithResolver(r *workbook.Resolver) Option {
	return func(s *Service) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithCacheSize sets the report cache size in bytes.
func WithCacheSize(bytes int) Option {
	return func(s *Service) {
		if bytes > 0 {
			s.cacheSize = bytes
		}
	}
}

// WithCacheTTL sets how long a built report stays cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl >= time.Second {
			s.cacheTTL = ttl
		}
	}
}

// WithClock sets the time source used to stamp reports.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
