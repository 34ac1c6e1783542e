// Package comparison averages metric columns and compares an athlete's value
// against the team average and against their own history.
package comparison

import (
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/quantity"
)

// TextNew is rendered when no historical baseline exists.
const TextNew = "New"

// Outcome is the qualitative result of a comparison.
type Outcome string

const (
	OutcomeGood    Outcome = "good"
	OutcomeBad     Outcome = "bad"
	OutcomeNeutral Outcome = "neutral"
	OutcomeNew     Outcome = "new"
)

// Tone is the display color key for an outcome.
type Tone string

const (
	ToneGreen Tone = "green"
	ToneRed   Tone = "red"
	ToneBlue  Tone = "blue"
	ToneGrey  Tone = "grey"
)

// Comparison is a value measured against a baseline.
type Comparison struct {
	Delta   quantity.Quantity `json:"delta"`
	Text    string            `json:"text"`
	Outcome Outcome           `json:"outcome"`
	// Negligible marks deltas within epsilon. Outcome is still good/bad.
	Negligible bool `json:"negligible"`
	Tone       Tone `json:"tone"`
}

// TeamAverage averages the strictly positive cells of a team column.
// It returns the zero quantity when no cell holds a value.
func TeamAverage(kind quantity.Kind, cells []quantity.Cell) quantity.Quantity {
	avg, _ := positiveMean(kind, cells)
	return avg
}

// HistoricalAverage averages the strictly positive cells of one athlete's
// history. ok is false when the athlete has no history at all.
func HistoricalAverage(kind quantity.Kind, cells []quantity.Cell) (avg quantity.Quantity, ok bool) {
	return positiveMean(kind, cells)
}

func positiveMean(kind quantity.Kind, cells []quantity.Cell) (quantity.Quantity, bool) {
	var sum float64
	var n int
	for _, c := range cells {
		q := quantity.Parse(kind, c)
		if !q.Positive() {
			continue
		}
		sum += q.Value
		n++
	}
	if n == 0 {
		return quantity.Zero(kind), false
	}
	return quantity.Quantity{Kind: kind, Value: sum / float64(n)}, true
}

// Compare measures value against baseline. A baseline that is not strictly
// positive, or of another kind, yields OutcomeNew. For inverted metrics
// (paces) a smaller value is good.
func Compare(value, baseline quantity.Quantity, inverted bool) Comparison {
	if !baseline.Positive() || baseline.Kind != value.Kind {
		return Comparison{
			Delta:   quantity.Zero(value.Kind),
			Text:    TextNew,
			Outcome: OutcomeNew,
			Tone:    ToneBlue,
		}
	}

	delta := value.Sub(baseline)
	good := delta.Value >= 0
	if inverted {
		good = !good
	}

	c := Comparison{
		Delta:      delta,
		Text:       quantity.FormatSignedDiff(delta),
		Outcome:    OutcomeBad,
		Negligible: delta.Negligible(),
	}
	if good {
		c.Outcome = OutcomeGood
	}
	c.Tone = toneOf(c)
	return c
}

// CompareToTeam is Compare for a team baseline. An undefined team average
// yields a neutral "-" instead of OutcomeNew.
func CompareToTeam(value, teamAverage quantity.Quantity, inverted bool) Comparison {
	if !teamAverage.Positive() {
		return Comparison{
			Delta:   quantity.Zero(value.Kind),
			Text:    quantity.Placeholder,
			Outcome: OutcomeNeutral,
			Tone:    ToneGrey,
		}
	}
	return Compare(value, teamAverage, inverted)
}

func toneOf(c Comparison) Tone {
	switch {
	case c.Outcome == OutcomeNew:
		return ToneBlue
	case c.Outcome == OutcomeNeutral, c.Negligible:
		return ToneGrey
	case c.Outcome == OutcomeGood:
		return ToneGreen
	default:
		return ToneRed
	}
}
