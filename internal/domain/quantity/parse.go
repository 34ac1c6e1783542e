package quantity

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// sentinels are the tokens hand-edited sheets use for "no data".
// Keys are lower-case; lookups happen after trimming.
var sentinels = map[string]struct{}{
	"nc":       {},
	"-":        {},
	"0":        {},
	"00:00:00": {},
	"none":     {},
	"nan":      {},
}

// IsSentinel reports whether s is a "no data" token.
func IsSentinel(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	_, ok := sentinels[strings.ToLower(s)]
	return ok
}

// ParseDuration converts a raw cell into a non-negative elapsed time.
// Anything it cannot interpret yields zero.
func ParseDuration(raw Cell) time.Duration {
	q, _ := Classify(KindDuration, raw)
	return q.AsDuration()
}

// ParseScalar converts a raw cell into a non-negative number. Both "." and ","
// are accepted as decimal separator. Anything it cannot interpret yields zero.
func ParseScalar(raw Cell) float64 {
	q, _ := Classify(KindScalar, raw)
	return q.Value
}

// Parse converts raw into a Quantity of the given kind.
func Parse(kind Kind, raw Cell) Quantity {
	q, _ := Classify(kind, raw)
	return q
}

// Classify parses raw and reports whether it held a value, was absent, or was
// rejected. The returned Quantity is always non-negative.
func Classify(kind Kind, raw Cell) (Quantity, Status) {
	switch kind {
	case KindDuration:
		secs, st := durationSeconds(raw)
		return Quantity{Kind: KindDuration, Value: secs}, st
	case KindScalar:
		v, st := scalarValue(raw)
		return Quantity{Kind: KindScalar, Value: v}, st
	default:
		return Quantity{}, StatusRejected
	}
}

func durationSeconds(raw Cell) (float64, Status) {
	switch v := raw.(type) {
	case nil:
		return 0, StatusAbsent
	case time.Duration:
		if v <= 0 {
			return 0, absentOrRejected(v == 0)
		}
		return v.Seconds(), StatusValue
	case time.Time:
		if v.IsZero() {
			return 0, StatusAbsent
		}
		secs := float64(v.Hour()*3600 + v.Minute()*60 + v.Second())
		return secs, valueOrAbsent(secs)
	case string:
		return durationFromString(v)
	case []byte:
		return durationFromString(string(v))
	case json.Number:
		return durationFromString(v.String())
	}
	if f, ok := toFloat(raw); ok {
		return dayFraction(f)
	}
	return durationFromString(fmt.Sprint(raw))
}

func durationFromString(s string) (float64, Status) {
	s = strings.TrimSpace(s)
	if IsSentinel(s) {
		return 0, StatusAbsent
	}
	// "2024-01-08 01:30:00" -> "01:30:00"
	if fields := strings.Fields(s); len(fields) > 1 {
		s = fields[len(fields)-1]
	}
	if strings.Contains(s, ":") {
		return clockSeconds(s)
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, StatusRejected
	}
	return dayFraction(f)
}

// clockSeconds interprets "H:M:S" or "M:S". Hours are not capped at 24, but
// totals above MaxDayFraction days are treated as corrupt.
func clockSeconds(s string) (float64, Status) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, StatusRejected
	}
	nums := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(p), ",", ".", 1), 64)
		if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, StatusRejected
		}
		nums[i] = f
	}
	var h, m, sec float64
	if len(nums) == 3 {
		h, m, sec = nums[0], nums[1], nums[2]
	} else {
		m, sec = nums[0], nums[1]
	}
	total := h*3600 + m*60 + sec
	if total > MaxDayFraction*secondsPerDay {
		return 0, StatusRejected
	}
	return total, valueOrAbsent(total)
}

// dayFraction converts an Excel time serial (fraction of 24h) to seconds,
// rounded to the second. Values above MaxDayFraction are treated as corrupt.
func dayFraction(f float64) (float64, Status) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > MaxDayFraction {
		return 0, StatusRejected
	}
	secs := math.Round(f * secondsPerDay)
	return secs, valueOrAbsent(secs)
}

func scalarValue(raw Cell) (float64, Status) {
	switch v := raw.(type) {
	case nil:
		return 0, StatusAbsent
	case string:
		return scalarFromString(v)
	case []byte:
		return scalarFromString(string(v))
	case json.Number:
		return scalarFromString(v.String())
	case time.Time, time.Duration:
		return 0, StatusRejected
	}
	if f, ok := toFloat(raw); ok {
		return checkScalar(f)
	}
	return scalarFromString(fmt.Sprint(raw))
}

func scalarFromString(s string) (float64, Status) {
	s = strings.TrimSpace(s)
	if IsSentinel(s) {
		return 0, StatusAbsent
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, StatusRejected
	}
	return checkScalar(f)
}

func checkScalar(f float64) (float64, Status) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, StatusRejected
	}
	return f, valueOrAbsent(f)
}

func toFloat(raw Cell) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

func valueOrAbsent(f float64) Status {
	if f > 0 {
		return StatusValue
	}
	return StatusAbsent
}

func absentOrRejected(absent bool) Status {
	if absent {
		return StatusAbsent
	}
	return StatusRejected
}
