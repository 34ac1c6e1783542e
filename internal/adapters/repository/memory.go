package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/workbook"
	"github.com/dagoperezh-lgtm/athlos-360-app/pkg/metrics"
	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store guarded by a RWMutex.
type MemoryStore struct {
	mu       sync.RWMutex
	snapshot Snapshot
	now      func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores wb as the workbook of the given kind.
func (s *MemoryStore) Put(ctx context.Context, kind Kind, wb *workbook.Workbook) (Snapshot, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if err := ctx.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("put %s workbook: %w", kind, err)
	}
	if wb == nil {
		return Snapshot{}, ErrNilWorkbook
	}

	s.mu.Lock()
	switch kind {
	case KindCurrent:
		s.snapshot.Current = wb
	case KindHistory:
		s.snapshot.History = wb
	default:
		s.mu.Unlock()
		return Snapshot{}, ErrInvalidKind
	}
	s.snapshot.ID = uuid.NewString()
	s.snapshot.UpdatedAt = s.now()
	snap := s.snapshot
	s.mu.Unlock()

	metrics.RecordWorkbookUpdate(string(kind))
	metrics.UpdateSnapshotLastUnix(float64(snap.UpdatedAt.Unix()))
	return snap, nil
}

// PutCurrent stores the current-week workbook.
func (s *MemoryStore) PutCurrent(ctx context.Context, wb *workbook.Workbook) (Snapshot, error) {
	return s.Put(ctx, KindCurrent, wb)
}

// PutHistory stores the historical workbook.
func (s *MemoryStore) PutHistory(ctx context.Context, wb *workbook.Workbook) (Snapshot, error) {
	return s.Put(ctx, KindHistory, wb)
}

// Snapshot returns the latest complete snapshot.
func (s *MemoryStore) Snapshot(ctx context.Context) (Snapshot, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if err := ctx.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot.Current == nil || s.snapshot.History == nil {
		return Snapshot{}, ErrNotFound
	}
	return s.snapshot, nil
}

// Has reports which workbooks are stored.
func (s *MemoryStore) Has() (current, history bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Current != nil, s.snapshot.History != nil
}
