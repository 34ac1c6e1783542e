// Package workbook models spreadsheet snapshots as plain values and resolves
// sheets, columns and athlete rows by loosely matched names.
package workbook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/quantity"
	"go.uber.org/multierr"
)

// Sheet is one worksheet: a header row and the data rows below it.
type Sheet struct {
	Name   string            `json:"name"`
	Header []string          `json:"header"`
	Rows   [][]quantity.Cell `json:"rows"`
}

// Workbook is an ordered set of sheets.
type Workbook struct {
	Sheets []Sheet `json:"sheets"`
}

// Decode reads a JSON workbook snapshot and validates it. Numbers are kept as
// json.Number so the parser sees the literal the sheet held.
func Decode(r io.Reader) (*Workbook, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var wb Workbook
	if err := dec.Decode(&wb); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	for i := range wb.Sheets {
		wb.Sheets[i].trimHeader()
	}
	if err := wb.Validate(); err != nil {
		return nil, err
	}
	return &wb, nil
}

// Validate reports every structural problem in the workbook.
func (wb *Workbook) Validate() error {
	if wb == nil || len(wb.Sheets) == 0 {
		return ErrEmptyWorkbook
	}
	var err error
	seen := make(map[string]struct{}, len(wb.Sheets))
	for _, s := range wb.Sheets {
		key := Fold(s.Name)
		if _, dup := seen[key]; dup {
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrDuplicateSheet, s.Name))
		}
		seen[key] = struct{}{}
		for i, row := range s.Rows {
			if len(row) > len(s.Header) {
				err = multierr.Append(err, fmt.Errorf("%w: sheet %q row %d has %d cells, header has %d",
					ErrRaggedRow, s.Name, i, len(row), len(s.Header)))
			}
		}
	}
	return err
}

// Sheet returns the sheet with exactly the given name.
func (wb *Workbook) Sheet(name string) (*Sheet, bool) {
	if wb == nil {
		return nil, false
	}
	for i := range wb.Sheets {
		if wb.Sheets[i].Name == name {
			return &wb.Sheets[i], true
		}
	}
	return nil, false
}

// First returns the first sheet, the one a single-sheet export carries.
func (wb *Workbook) First() (*Sheet, bool) {
	if wb == nil || len(wb.Sheets) == 0 {
		return nil, false
	}
	return &wb.Sheets[0], true
}

// Names returns the sheet names in order.
func (wb *Workbook) Names() []string {
	if wb == nil {
		return nil
	}
	out := make([]string, len(wb.Sheets))
	for i, s := range wb.Sheets {
		out[i] = s.Name
	}
	return out
}

// ColumnIndex returns the position of the header equal to name after trimming.
func (s *Sheet) ColumnIndex(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, h := range s.Header {
		if strings.TrimSpace(h) == name {
			return i, true
		}
	}
	return -1, false
}

// Cell returns the cell at row, col or nil when it is outside the sheet.
func (s *Sheet) Cell(row, col int) quantity.Cell {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return nil
	}
	return s.Rows[row][col]
}

// Column returns every cell of col, top to bottom.
func (s *Sheet) Column(col int) []quantity.Cell {
	out := make([]quantity.Cell, len(s.Rows))
	for i := range s.Rows {
		out[i] = s.Cell(i, col)
	}
	return out
}

// RowCells returns the cells of row at the given columns.
func (s *Sheet) RowCells(row int, cols []int) []quantity.Cell {
	out := make([]quantity.Cell, len(cols))
	for i, c := range cols {
		out[i] = s.Cell(row, c)
	}
	return out
}

func (s *Sheet) trimHeader() {
	for i, h := range s.Header {
		s.Header[i] = strings.TrimSpace(h)
	}
}
