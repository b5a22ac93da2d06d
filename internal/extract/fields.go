package extract

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Sub-analyzers evolve independently and emit inconsistent field names for
// conceptually identical values (credibility_score vs score vs rating).
// Resolve centralizes that fallback so the order itself is a single
// auditable artifact instead of special-case branching in every consumer.

// Resolve walks the candidate fields in order and returns the first value
// that parses to a finite number. Candidate fields may be dotted paths
// ("scores.credibility") into nested maps. Nil, arrays, and non-map input
// resolve nothing; Resolve never panics.
func Resolve(raw any, fields []string) (float64, bool) {
	for _, field := range fields {
		val, ok := lookupPath(raw, field)
		if !ok {
			continue
		}
		if num, ok := toNumber(val); ok {
			return num, true
		}
	}
	return 0, false
}

// Extract is Resolve with a default for the unresolved case
func Extract(raw any, fields []string, def float64) float64 {
	if num, ok := Resolve(raw, fields); ok {
		return num
	}
	return def
}

// lookupPath follows a dotted path through nested string-keyed maps
func lookupPath(raw any, path string) (any, bool) {
	current := raw
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// toNumber coerces a value to a finite float64. Numeric strings are
// accepted because some analyzers serialize scores as strings.
func toNumber(v any) (float64, bool) {
	var num float64

	switch val := v.(type) {
	case float64:
		num = val
	case float32:
		num = float64(val)
	case int:
		num = float64(val)
	case int32:
		num = float64(val)
	case int64:
		num = float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		num = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		num = f
	default:
		return 0, false
	}

	if math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, false
	}
	return num, true
}
