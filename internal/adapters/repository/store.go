// Package repository keeps the workbook snapshot the reports are built from.
package repository

import (
	"context"
	"strings"
	"time"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/workbook"
)

// Kind names one of the two workbooks of a snapshot.
type Kind string

const (
	KindCurrent Kind = "current"
	KindHistory Kind = "history"
)

// ParseKind parses a workbook kind, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindCurrent:
		return KindCurrent, nil
	case KindHistory:
		return KindHistory, nil
	default:
		return "", ErrInvalidKind
	}
}

// Snapshot is a consistent pair of workbooks. ID changes whenever either
// workbook is replaced, so it can key caches of derived data.
type Snapshot struct {
	ID        string
	Current   *workbook.Workbook
	History   *workbook.Workbook
	UpdatedAt time.Time
}

// Store provides read/write access to the workbook snapshot.
type Store interface {
	// Put replaces the workbook of the given kind and returns the new snapshot
	// identity. The returned snapshot may be incomplete.
	Put(ctx context.Context, kind Kind, wb *workbook.Workbook) (Snapshot, error)

	// Snapshot returns the latest complete snapshot.
	// Returns ErrNotFound until both workbooks have been stored.
	Snapshot(ctx context.Context) (Snapshot, error)
}
