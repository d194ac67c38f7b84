package provider

import (
	"strconv"
	"strings"
)

// ExtractValue normalizes a stat cell from a loosely typed provider payload.
//
// stats.nba.com rowSets mix float64, int-like floats, strings and nulls.
// HTML tables yield strings such as "1,402" or "" for missing cells.
//
// Returns the scalar float64 value, and ok=false if not extractable.
func ExtractValue(val interface{}) (float64, bool) {
	if val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		if s == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
		return 0, false
	case map[string]interface{}:
		// Nested aggregates: try "total", "value"
		for _, key := range []string{"total", "value"} {
			if inner, exists := v[key]; exists && inner != nil {
				return ExtractValue(inner)
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

// ExtractString returns a trimmed string cell, or "" when the cell is not a
// string.
func ExtractString(val interface{}) string {
	s, _ := val.(string)
	return strings.TrimSpace(s)
}

// ExtractInt returns a cell as an int, truncating fractional values.
func ExtractInt(val interface{}) (int, bool) {
	f, ok := ExtractValue(val)
	if !ok {
		return 0, false
	}
	return int(f), true
}
