package quantity

import (
	"fmt"
	"strconv"
	"time"
)

// Placeholder is rendered for absent or negligible values.
const Placeholder = "-"

const (
	diffDecimals = 1
	zeroDiffText = "0.0"
)

// FormatDuration renders d as "{h}h {mm}m" or, below one hour, "{m}m {ss}s".
// The sign of d is ignored.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	if d < DurationEpsilon {
		return Placeholder
	}
	total := int64(d / time.Second)
	h, rem := total/3600, total%3600
	m, s := rem/60, rem%60
	if h >= 1 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm %02ds", m, s)
}

// FormatPace renders d as minutes per 100m for swimming or per km otherwise.
func FormatPace(d time.Duration, sport Sport) string {
	if d < 0 {
		d = -d
	}
	if d < DurationEpsilon {
		return Placeholder
	}
	total := int64(d / time.Second)
	m, s := total/60, total%60
	unit := "/km"
	if sport == SportSwim {
		unit = "/100m"
	}
	return fmt.Sprintf("%d:%02d %s", m, s, unit)
}

// FormatScalar renders v in fixed-point notation; zero renders as "-".
func FormatScalar(v float64, decimals int) string {
	if v == 0 {
		return Placeholder
	}
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// FormatSignedDiff renders delta with a leading sign, or "-" when it is
// within the kind's epsilon or rounds to zero at the shown precision.
func FormatSignedDiff(delta Quantity) string {
	if delta.Negligible() {
		return Placeholder
	}
	sign := "+"
	if delta.Value < 0 {
		sign = "-"
	}
	mag := delta.Abs()
	if mag.Kind == KindDuration {
		return sign + FormatDuration(mag.AsDuration())
	}
	text := FormatScalar(mag.Value, diffDecimals)
	if text == zeroDiffText {
		return Placeholder
	}
	return sign + text
}

// FormatClock renders d as "H:MM:SS", the canonical form accepted by
// ParseDuration.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
