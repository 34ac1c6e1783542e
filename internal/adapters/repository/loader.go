package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/workbook"
	"github.com/dagoperezh-lgtm/athlos-360-app/pkg/metrics"
	"go.uber.org/multierr"
)

// Default loader configuration constants.
const (
	defaultRefreshInterval = 10 * time.Minute
)

type source struct {
	kind    Kind
	path    string
	modTime time.Time
	size    int64
}

// FileLoader reads JSON workbook snapshots from disk into a Store. Freshness
// is pull-based: callers ask Stale and then Load.
type FileLoader struct {
	store    Store
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sources  []*source
	lastLoad time.Time
}

// NewFileLoader creates a loader for the given paths. An empty path is skipped.
func NewFileLoader(store Store, currentPath, historyPath string, opts ...LoaderOption) *FileLoader {
	l := &FileLoader{
		store:    store,
		interval: defaultRefreshInterval,
		now:      time.Now,
	}
	if currentPath != "" {
		l.sources = append(l.sources, &source{kind: KindCurrent, path: currentPath})
	}
	if historyPath != "" {
		l.sources = append(l.sources, &source{kind: KindHistory, path: historyPath})
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Stale reports whether the files should be read again.
func (l *FileLoader) Stale() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.sources) == 0 {
		return false
	}
	if l.lastLoad.IsZero() {
		return true
	}
	return l.interval > 0 && l.now().Sub(l.lastLoad) >= l.interval
}

// Load reads every file whose size or modification time changed since the
// last load and stores it. Errors from both files are combined; a file that
// loads is stored even when the other fails.
func (l *FileLoader) Load(ctx context.Context) (changed bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, src := range l.sources {
		ok, loadErr := l.loadOne(ctx, src)
		if loadErr != nil {
			metrics.RecordWorkbookLoadError("file")
			err = multierr.Append(err, loadErr)
			continue
		}
		changed = changed || ok
	}
	l.lastLoad = l.now()
	return changed, err
}

func (l *FileLoader) loadOne(ctx context.Context, src *source) (bool, error) {
	info, err := os.Stat(src.path)
	if err != nil {
		return false, fmt.Errorf("stat %s workbook: %w", src.kind, err)
	}
	if info.ModTime().Equal(src.modTime) && info.Size() == src.size {
		return false, nil
	}

	f, err := os.Open(src.path)
	if err != nil {
		return false, fmt.Errorf("open %s workbook: %w", src.kind, err)
	}
	defer f.Close()

	wb, err := workbook.Decode(f)
	if err != nil {
		return false, fmt.Errorf("load %s workbook %s: %w", src.kind, src.path, err)
	}
	if _, err := l.store.Put(ctx, src.kind, wb); err != nil {
		return false, fmt.Errorf("store %s workbook: %w", src.kind, err)
	}
	src.modTime = info.ModTime()
	src.size = info.Size()
	return true, nil
}
