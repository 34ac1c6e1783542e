// Package report assembles the weekly team and athlete report from a
// current-week workbook and a historical workbook.
package report

import (
	"time"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/comparison"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/metric"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/quantity"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/workbook"
)

// Report is the full weekly report.
type Report struct {
	SnapshotID  string      `json:"snapshot_id,omitempty"`
	GeneratedAt time.Time   `json:"generated_at"`
	Team        []TeamLine  `json:"team"`
	Athletes    []Athlete   `json:"athletes"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// TeamLine is one metric's team average for the current week and across the
// whole history.
type TeamLine struct {
	Metric         string            `json:"metric"`
	Label          string            `json:"label"`
	Discipline     metric.Discipline `json:"discipline"`
	Current        quantity.Quantity `json:"current"`
	CurrentText    string            `json:"current_text"`
	Historical     quantity.Quantity `json:"historical"`
	HistoricalText string            `json:"historical_text"`
	// HasColumn is false when the current-week sheet lacks the metric.
	HasColumn bool `json:"has_column"`
	// HasHistory is false when no positive value exists in the history sheet.
	HasHistory bool `json:"has_history"`
}

// Line is one athlete's value for one metric with both comparisons.
type Line struct {
	Metric    string                `json:"metric"`
	Label     string                `json:"label"`
	Unit      string                `json:"unit,omitempty"`
	Value     quantity.Quantity     `json:"value"`
	Text      string                `json:"text"`
	VsTeam    comparison.Comparison `json:"vs_team"`
	VsHistory comparison.Comparison `json:"vs_history"`
	Active    bool                  `json:"active"`
}

// Section groups an athlete's lines for one discipline.
type Section struct {
	Discipline metric.Discipline `json:"discipline"`
	Title      string            `json:"title"`
	// Active is false for a discipline with no activity this week.
	Active bool   `json:"active"`
	Lines  []Line `json:"lines"`
}

// ActiveLines returns the lines holding a value, the ones a printed report
// lists.
func (s Section) ActiveLines() []Line {
	var out []Line
	for _, l := range s.Lines {
		if l.Active {
			out = append(out, l)
		}
	}
	return out
}

// Athlete is one athlete's report card.
type Athlete struct {
	Name     string    `json:"name"`
	Key      string    `json:"key"`
	Sections []Section `json:"sections"`
}

// Line returns the athlete's line for a metric key.
func (a Athlete) Line(key string) (Line, bool) {
	for _, s := range a.Sections {
		for _, l := range s.Lines {
			if l.Metric == key {
				return l, true
			}
		}
	}
	return Line{}, false
}

// Diagnostics summarizes how the source cells were read.
type Diagnostics struct {
	Values   int `json:"values"`
	Absent   int `json:"absent"`
	Rejected int `json:"rejected"`
	// MissingColumns lists metrics absent from the current-week sheet.
	MissingColumns []string `json:"missing_columns,omitempty"`
	// MissingSheets lists metrics without a history sheet.
	MissingSheets []string `json:"missing_sheets,omitempty"`
	// DuplicateAthletes lists repeated rows; only the first row is reported.
	DuplicateAthletes []string `json:"duplicate_athletes,omitempty"`
	NameColumnMissing bool     `json:"name_column_missing,omitempty"`
}

func (d *Diagnostics) count(s quantity.Status) {
	switch s {
	case quantity.StatusValue:
		d.Values++
	case quantity.StatusRejected:
		d.Rejected++
	default:
		d.Absent++
	}
}

// FindAthlete returns the athlete whose name matches by name key.
func (r *Report) FindAthlete(name string) (Athlete, bool) {
	key := workbook.NameKey(name)
	for _, a := range r.Athletes {
		if a.Key == key {
			return a, true
		}
	}
	return Athlete{}, false
}
