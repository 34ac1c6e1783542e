// Package metric holds the static table of reportable training metrics.
package metric

import (
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/quantity"
)

// Discipline groups metrics into report sections.
type Discipline string

const (
	DisciplineSummary Discipline = "summary"
	DisciplineSwim    Discipline = "swim"
	DisciplineBike    Discipline = "bike"
	DisciplineRun     Discipline = "run"
)

// Disciplines lists the report sections in display order.
var Disciplines = []Discipline{DisciplineSummary, DisciplineSwim, DisciplineBike, DisciplineRun}

// Title is the section heading used by the club's reports.
func (d Discipline) Title() string {
	switch d {
	case DisciplineSwim:
		return "NATACIÓN"
	case DisciplineBike:
		return "CICLISMO"
	case DisciplineRun:
		return "TROTE"
	default:
		return "RESUMEN"
	}
}

// Definition describes one metric: where its values live in the current-week
// sheet and the historical workbook, and how it compares.
type Definition struct {
	Key        string        `json:"key"`
	Column     string        `json:"column"`
	HistoryKey string        `json:"history_key"`
	Kind       quantity.Kind `json:"kind"`
	Label      string        `json:"label"`
	Unit       string        `json:"unit,omitempty"`
	// Inverted marks metrics where a smaller value is better (paces).
	Inverted   bool           `json:"inverted"`
	Pace       bool           `json:"pace"`
	Sport      quantity.Sport `json:"-"`
	Discipline Discipline     `json:"discipline"`
}

// Parse interprets a raw cell with the parser matching the metric's kind.
func (d Definition) Parse(raw quantity.Cell) quantity.Quantity {
	return quantity.Parse(d.Kind, raw)
}

// Format renders q for display. Paces use the per-distance notation of the
// metric's sport; scalars carry the unit suffix when non-zero.
func (d Definition) Format(q quantity.Quantity) string {
	switch {
	case d.Kind == quantity.KindDuration && d.Pace:
		return quantity.FormatPace(q.AsDuration(), d.Sport)
	case d.Kind == quantity.KindDuration:
		return quantity.FormatDuration(q.AsDuration())
	}
	s := quantity.FormatScalar(q.Value, 1)
	if q.Value == 0 || d.Unit == "" {
		return s
	}
	return s + " " + d.Unit
}

// Override replaces the workbook-facing names of one metric.
// Empty fields keep the default.
type Override struct {
	Column     string
	HistoryKey string
	Label      string
}

func (d Definition) with(o Override) Definition {
	if o.Column != "" {
		d.Column = o.Column
	}
	if o.HistoryKey != "" {
		d.HistoryKey = o.HistoryKey
	}
	if o.Label != "" {
		d.Label = o.Label
	}
	return d
}
