package workbook

import "errors"

var (
	// ErrEmptyWorkbook is returned when a workbook has no sheets.
	ErrEmptyWorkbook = errors.New("workbook has no sheets")
	// ErrDuplicateSheet is returned when two sheets fold to the same name.
	ErrDuplicateSheet = errors.New("duplicate sheet name")
	// ErrRaggedRow is returned when a row has more cells than the header.
	ErrRaggedRow = errors.New("row wider than header")
	// ErrDecode is returned when a workbook snapshot is not valid JSON.
	ErrDecode = errors.New("decode workbook")
)
