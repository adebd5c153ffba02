// Package codec converts between the engine's string-encoded property values
// and typed values. Every parser here fails soft: malformed input yields the
// zero value and ok=false, never a panic or an error.
package codec

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders a float the way numeric properties are stored.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	if v == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatInt renders an integer property value.
func FormatInt(v int) string {
	return strconv.Itoa(v)
}

// FormatBool renders a boolean property value as "1" or "0".
func FormatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// ParseNumber parses a numeric property. A trailing '%' divides by 100.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		scale = 0.01
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v * scale, true
}

// Double parses a numeric property, returning 0 when malformed.
func Double(s string) float64 {
	v, _ := ParseNumber(s)
	return v
}

// Int parses an integer property. Hex ("0x10") is accepted; fractional
// values truncate toward zero. Malformed input returns 0.
func Int(s string) int {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return int(i)
	}
	v, _ := ParseNumber(s)
	return int(v)
}

// Bool parses a boolean property. Numbers are true when non-zero.
func Bool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off", "":
		return false
	}
	return Double(s) != 0
}
