package report

import (
	"sort"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/comparison"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/metric"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/quantity"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/workbook"
)

// Option configures a Builder.
type Option func(*Builder)

// WithTable sets the metric table.
func WithTable(t *metric.Table) Option {
	return func(b *Builder) {
		if t != nil {
			b.table = t
		}
	}
}

// WithResolver sets the sheet and column resolver.
func WithResolver(r *workbook.Resolver) Option {
	return func(b *Builder) {
		if r != nil {
			b.resolver = r
		}
	}
}

// Builder turns workbooks into a Report. It holds no mutable state and may be
// shared between goroutines.
type Builder struct {
	table    *metric.Table
	resolver *workbook.Resolver
}

// NewBuilder creates a builder over the default metric table.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		table:    metric.Defaults(),
		resolver: workbook.NewResolver(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Table returns the metric table the builder reports on.
func (b *Builder) Table() *metric.Table { return b.table }

// history is the resolved history sheet of one metric.
type history struct {
	sheet *workbook.Sheet
	weeks []int
	rows  map[string]int
}

func (h *history) personal(def metric.Definition, key string) (quantity.Quantity, bool) {
	if h == nil {
		return quantity.Zero(def.Kind), false
	}
	row, ok := h.rows[key]
	if !ok {
		return quantity.Zero(def.Kind), false
	}
	return comparison.HistoricalAverage(def.Kind, h.sheet.RowCells(row, h.weeks))
}

// Build computes the report. Missing sheets, columns and rows degrade to
// undefined averages and "New" comparisons; Build never fails.
func (b *Builder) Build(current, hist *workbook.Workbook) Report {
	var rep Report
	defs := b.table.All()

	week, _ := current.First()
	cols := make(map[string]int, len(defs))
	if week != nil {
		for _, def := range defs {
			if c, ok := b.resolver.FindColumn(week, def.Column); ok {
				cols[def.Key] = c
			}
		}
	}

	histories := make(map[string]*history, len(defs))
	for _, def := range defs {
		histories[def.Key] = b.resolveHistory(hist, def)
	}

	teamAvg := make(map[string]quantity.Quantity, len(defs))
	for _, def := range defs {
		line := TeamLine{
			Metric:     def.Key,
			Label:      def.Label,
			Discipline: def.Discipline,
			Current:    quantity.Zero(def.Kind),
			Historical: quantity.Zero(def.Kind),
		}
		if c, ok := cols[def.Key]; ok {
			line.HasColumn = true
			line.Current = comparison.TeamAverage(def.Kind, athleteCells(b.resolver, week, c))
		} else {
			rep.Diagnostics.MissingColumns = append(rep.Diagnostics.MissingColumns, def.Key)
		}
		if h := histories[def.Key]; h != nil {
			line.Historical, line.HasHistory = b.teamHistory(def, h, &rep.Diagnostics)
		} else {
			rep.Diagnostics.MissingSheets = append(rep.Diagnostics.MissingSheets, def.Key)
		}
		line.CurrentText = def.Format(line.Current)
		line.HistoricalText = def.Format(line.Historical)
		teamAvg[def.Key] = line.Current
		rep.Team = append(rep.Team, line)
	}

	if week == nil {
		return rep
	}
	nameCol, ok := b.resolver.NameColumn(week)
	if !ok {
		rep.Diagnostics.NameColumnMissing = true
		return rep
	}

	seen := make(map[string]bool, len(week.Rows))
	for row := range week.Rows {
		name, ok := b.resolver.AthleteName(week, row, nameCol)
		if !ok {
			continue
		}
		a := Athlete{Name: name, Key: workbook.NameKey(name)}
		if seen[a.Key] {
			rep.Diagnostics.DuplicateAthletes = append(rep.Diagnostics.DuplicateAthletes, name)
			continue
		}
		seen[a.Key] = true
		lines := make(map[metric.Discipline][]Line, len(metric.Disciplines))
		for _, def := range defs {
			var raw quantity.Cell
			if c, ok := cols[def.Key]; ok {
				raw = week.Cell(row, c)
			}
			value, status := quantity.Classify(def.Kind, raw)
			rep.Diagnostics.count(status)

			personal, hasHistory := histories[def.Key].personal(def, a.Key)
			sample := comparison.Sample{
				Current:     value,
				TeamAverage: teamAvg[def.Key],
				Historical:  personal,
				HasHistory:  hasHistory,
				Inverted:    def.Inverted,
			}
			lines[def.Discipline] = append(lines[def.Discipline], Line{
				Metric:    def.Key,
				Label:     def.Label,
				Unit:      def.Unit,
				Value:     value,
				Text:      def.Format(value),
				VsTeam:    sample.VsTeam(),
				VsHistory: sample.VsHistory(),
				Active:    value.Positive(),
			})
		}
		for _, d := range metric.Disciplines {
			ls, ok := lines[d]
			if !ok {
				continue
			}
			sec := Section{Discipline: d, Title: d.Title(), Lines: ls}
			for _, l := range ls {
				if l.Active {
					sec.Active = true
					break
				}
			}
			a.Sections = append(a.Sections, sec)
		}
		rep.Athletes = append(rep.Athletes, a)
	}
	return rep
}

func (b *Builder) resolveHistory(wb *workbook.Workbook, def metric.Definition) *history {
	sheet, ok := b.resolver.FindSheet(wb, def.HistoryKey)
	if !ok {
		return nil
	}
	h := &history{
		sheet: sheet,
		weeks: b.resolver.WeekColumns(sheet),
		rows:  make(map[string]int, len(sheet.Rows)),
	}
	if nameCol, ok := b.resolver.NameColumn(sheet); ok {
		for row := range sheet.Rows {
			name, ok := b.resolver.AthleteName(sheet, row, nameCol)
			if !ok {
				continue
			}
			key := workbook.NameKey(name)
			if _, seen := h.rows[key]; !seen {
				h.rows[key] = row
			}
		}
	}
	return h
}

// teamHistory averages every positive week cell of the metric's history
// sheet. Totals and average rows are left out when the sheet names its rows.
func (b *Builder) teamHistory(def metric.Definition, h *history, diag *Diagnostics) (quantity.Quantity, bool) {
	rows := make([]int, 0, len(h.sheet.Rows))
	if _, named := b.resolver.NameColumn(h.sheet); named {
		for _, row := range h.rows {
			rows = append(rows, row)
		}
		sort.Ints(rows)
	} else {
		for row := range h.sheet.Rows {
			rows = append(rows, row)
		}
	}

	cells := make([]quantity.Cell, 0, len(rows)*len(h.weeks))
	for _, row := range rows {
		for _, c := range h.sheet.RowCells(row, h.weeks) {
			_, status := quantity.Classify(def.Kind, c)
			diag.count(status)
			cells = append(cells, c)
		}
	}
	return comparison.HistoricalAverage(def.Kind, cells)
}

func athleteCells(r *workbook.Resolver, s *workbook.Sheet, col int) []quantity.Cell {
	nameCol, named := r.NameColumn(s)
	cells := make([]quantity.Cell, 0, len(s.Rows))
	for row := range s.Rows {
		if named {
			if _, ok := r.AthleteName(s, row, nameCol); !ok {
				continue
			}
		}
		cells = append(cells, s.Cell(row, col))
	}
	return cells
}
