package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToString converts a scalar from a decoded feed to its text form.
// Numbers keep their source spelling when they arrive as json.Number.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ParseNumber parses a decimal written with either '.' or ',' as the separator
// ("12,5" and "12.5" both give 12.5). Surrounding spaces are ignored.
// NaN, infinities and empty input are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToNumber converts a scalar to a float64. Strings go through ParseNumber.
func ToNumber(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		return ParseNumber(v.String())
	case string:
		return ParseNumber(v)
	case []byte:
		return ParseNumber(string(v))
	default:
		return 0, false
	}
}
