package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrNotFound    = errors.New("workbook snapshot not found")
	ErrInvalidKind = errors.New("invalid workbook kind")
	ErrNilWorkbook = errors.New("nil workbook")
)
