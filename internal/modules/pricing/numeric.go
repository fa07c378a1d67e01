package pricing

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Round rounds half-up to the given number of fractional digits.
func Round(value float64, precision int) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrInvalidNumber
	}
	p := math.Pow(10, float64(precision))
	return math.Floor(value*p+0.5) / p, nil
}

// round2 is the internal shortcut for monetary rounding. Inputs are
// validated finite at ingress, so no error path here.
func round2(value float64) float64 {
	return math.Floor(value*100+0.5) / 100
}

// SafeNumber coerces a loosely-typed value to a float64, falling back to def
// for nil, blank or non-numeric input. Persisted estimate records may be
// partially filled drafts, so ingress paths degrade garbage to zero cost
// instead of failing.
func SafeNumber(value any, def float64) float64 {
	if value == nil {
		return def
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return def
	}
	f, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
