package workbook

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Default lookup vocabulary of the club's workbooks.
var (
	DefaultNameColumns = []string{"Deportista", "Nombre", "Atleta"}
	DefaultSkipNames   = []string{"nan", "none", "totales", "promedio"}
)

const (
	defaultWeekMarker = "sem"
	defaultMaxStray   = 1
)

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithNameColumns sets the accepted headers of the athlete name column.
func WithNameColumns(names ...string) ResolverOption {
	return func(r *Resolver) {
		if len(names) > 0 {
			r.nameColumns = foldAll(names)
		}
	}
}

// WithWeekMarker sets the text that marks a history column as a week.
func WithWeekMarker(marker string) ResolverOption {
	return func(r *Resolver) {
		if m := Fold(marker); m != "" {
			r.weekMarker = m
		}
	}
}

// WithMaxStray sets how many stray characters a fuzzy sheet match may skip.
// Zero disables the fuzzy fallback.
func WithMaxStray(n int) ResolverOption {
	return func(r *Resolver) {
		if n >= 0 {
			r.maxStray = n
		}
	}
}

// Resolver finds sheets, columns and rows by loosely matched names.
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	nameColumns []string
	skipNames   map[string]struct{}
	weekMarker  string
	maxStray    int
}

// NewResolver creates a resolver with the club's default vocabulary.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		nameColumns: foldAll(DefaultNameColumns),
		skipNames:   make(map[string]struct{}, len(DefaultSkipNames)),
		weekMarker:  defaultWeekMarker,
		maxStray:    defaultMaxStray,
	}
	for _, n := range DefaultSkipNames {
		r.skipNames[Fold(n)] = struct{}{}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FindSheet locates the sheet for key. Matching is tried in order:
// folded equality, folded substring (shortest sheet name wins so "Ciclismo"
// does not land on "Ciclismo Distancia"), then a fuzzy subsequence match over
// letters and digits that may skip at most maxStray characters.
func (r *Resolver) FindSheet(wb *Workbook, key string) (*Sheet, bool) {
	if wb == nil || len(wb.Sheets) == 0 {
		return nil, false
	}
	want := Fold(key)
	if want == "" {
		return nil, false
	}

	folded := make([]string, len(wb.Sheets))
	for i, s := range wb.Sheets {
		folded[i] = Fold(s.Name)
		if folded[i] == want {
			return &wb.Sheets[i], true
		}
	}

	best := -1
	for i, name := range folded {
		if !strings.Contains(name, want) {
			continue
		}
		if best < 0 || len(name) < len(folded[best]) {
			best = i
		}
	}
	if best >= 0 {
		return &wb.Sheets[best], true
	}

	if i, ok := r.fuzzySheet(folded, want); ok {
		return &wb.Sheets[i], true
	}
	return nil, false
}

func (r *Resolver) fuzzySheet(folded []string, want string) (int, bool) {
	if r.maxStray == 0 {
		return -1, false
	}
	pattern := squash(want)
	if pattern == "" {
		return -1, false
	}
	squashed := make([]string, len(folded))
	for i, name := range folded {
		squashed[i] = squash(name)
	}
	for _, m := range fuzzy.Find(pattern, squashed) {
		if len(m.MatchedIndexes) == 0 {
			continue
		}
		span := m.MatchedIndexes[len(m.MatchedIndexes)-1] - m.MatchedIndexes[0] + 1
		if span <= len(pattern)+r.maxStray {
			return m.Index, true
		}
	}
	return -1, false
}

// FindColumn returns the first header that folds equal to one of names,
// trying names in order.
func (r *Resolver) FindColumn(s *Sheet, names ...string) (int, bool) {
	if s == nil {
		return -1, false
	}
	headers := foldAll(s.Header)
	for _, n := range names {
		want := Fold(n)
		if want == "" {
			continue
		}
		for i, h := range headers {
			if h == want {
				return i, true
			}
		}
	}
	return -1, false
}

// WeekColumns returns the positions of every week column of a history sheet.
func (r *Resolver) WeekColumns(s *Sheet) []int {
	if s == nil {
		return nil
	}
	var cols []int
	for i, h := range s.Header {
		if strings.Contains(Fold(h), r.weekMarker) {
			cols = append(cols, i)
		}
	}
	return cols
}

// NameColumn returns the leftmost column holding athlete names.
func (r *Resolver) NameColumn(s *Sheet) (int, bool) {
	if s == nil {
		return -1, false
	}
	for i, h := range s.Header {
		fh := Fold(h)
		for _, n := range r.nameColumns {
			if fh == n {
				return i, true
			}
		}
	}
	return -1, false
}

// AthleteName returns the trimmed athlete name of a row, or false when the
// row is blank or a totals/average line.
func (r *Resolver) AthleteName(s *Sheet, row, nameCol int) (string, bool) {
	cell := s.Cell(row, nameCol)
	if cell == nil {
		return "", false
	}
	name := strings.TrimSpace(cellString(cell))
	if name == "" {
		return "", false
	}
	if _, skip := r.skipNames[Fold(name)]; skip {
		return "", false
	}
	return name, true
}

// FindRow returns the first row whose name column matches name by NameKey.
func (r *Resolver) FindRow(s *Sheet, name string) (int, bool) {
	col, ok := r.NameColumn(s)
	if !ok {
		return -1, false
	}
	want := NameKey(name)
	if want == "" {
		return -1, false
	}
	for i := range s.Rows {
		if NameKey(cellString(s.Cell(i, col))) == want {
			return i, true
		}
	}
	return -1, false
}

func foldAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Fold(s)
	}
	return out
}
