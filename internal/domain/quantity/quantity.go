// Package quantity parses raw spreadsheet cells into canonical durations and
// scalars and renders them back as short display strings.
package quantity

import (
	"fmt"
	"math"
	"time"
)

// Thresholds shared by the formatters and the comparator.
const (
	// DurationEpsilon is 0.0001 of a day.
	DurationEpsilon = 8640 * time.Millisecond
	// ScalarEpsilon bounds scalar deltas considered negligible.
	ScalarEpsilon = 0.01
	// MaxDayFraction guards against corrupt serial-day cells.
	MaxDayFraction = 100.0
)

// Cell is an untyped value as it arrives from spreadsheet ingestion.
type Cell = any

// Kind selects how a cell is interpreted.
type Kind int

const (
	// KindUnknown is the zero Kind and never compares against a baseline.
	KindUnknown Kind = iota
	// KindDuration is an elapsed time (training time or pace).
	KindDuration
	// KindScalar is a plain number (km, m, km/h, consistency index).
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindDuration:
		return "duration"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "duration":
		*k = KindDuration
	case "scalar":
		*k = KindScalar
	case "unknown", "":
		*k = KindUnknown
	default:
		return fmt.Errorf("unknown quantity kind %q", string(b))
	}
	return nil
}

// Status reports how a cell was classified by the parser.
type Status int

const (
	// StatusAbsent covers blanks, sentinels and zeros.
	StatusAbsent Status = iota
	// StatusValue is a strictly positive parsed value.
	StatusValue
	// StatusRejected is a cell that could not be parsed or failed a sanity bound.
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusValue:
		return "value"
	case StatusRejected:
		return "rejected"
	default:
		return "absent"
	}
}

// Sport selects the distance unit used for paces.
type Sport int

const (
	SportNone Sport = iota
	SportSwim
	SportBike
	SportRun
)

func (s Sport) String() string {
	switch s {
	case SportSwim:
		return "swim"
	case SportBike:
		return "bike"
	case SportRun:
		return "run"
	default:
		return "none"
	}
}

// Quantity is a parsed metric value. Durations keep seconds in Value.
// The zero Value means "absent".
type Quantity struct {
	Kind  Kind    `json:"kind"`
	Value float64 `json:"value"`
}

// Duration wraps an elapsed time.
func Duration(d time.Duration) Quantity {
	return Quantity{Kind: KindDuration, Value: d.Seconds()}
}

// Scalar wraps a plain number.
func Scalar(v float64) Quantity {
	return Quantity{Kind: KindScalar, Value: v}
}

// Zero returns the absent quantity of the given kind.
func Zero(kind Kind) Quantity {
	return Quantity{Kind: kind}
}

// AsDuration converts the seconds held by q into a time.Duration, saturating
// at the limits of time.Duration.
func (q Quantity) AsDuration() time.Duration {
	ns := math.Round(q.Value * float64(time.Second))
	switch {
	case math.IsNaN(ns):
		return 0
	case ns >= math.MaxInt64:
		return math.MaxInt64
	case ns <= math.MinInt64:
		return math.MinInt64
	}
	return time.Duration(ns)
}

// Positive reports whether q holds a strictly positive value.
func (q Quantity) Positive() bool {
	return q.Value > 0
}

// Sub returns q - other, keeping q's kind.
func (q Quantity) Sub(other Quantity) Quantity {
	return Quantity{Kind: q.Kind, Value: q.Value - other.Value}
}

// Abs returns the magnitude of q.
func (q Quantity) Abs() Quantity {
	return Quantity{Kind: q.Kind, Value: math.Abs(q.Value)}
}

// Negligible reports whether |q| is below the kind's epsilon.
func (q Quantity) Negligible() bool {
	if q.Kind == KindDuration {
		return math.Abs(q.Value) < DurationEpsilon.Seconds()
	}
	return math.Abs(q.Value) < ScalarEpsilon
}

// String renders q with the kind's default formatter.
func (q Quantity) String() string {
	if q.Kind == KindDuration {
		return FormatDuration(q.AsDuration())
	}
	return FormatScalar(q.Value, 1)
}
