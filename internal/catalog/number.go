package catalog

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ParseNumber converts a flexible scalar to a float64. It accepts numbers,
// numeric strings with thousands separators and comma decimal points
// ("1,234.56", "1.234,56" and "99,90" all parse). Unparsable values return
// ok=false, never an error. Parsing an already-parsed number is a no-op.
func ParseNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case string:
		return parseNumericString(v)
	case bool:
		return 0, false
	default:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return 0, false
		}
		return f, true
	}
}

// NumberPtr is ParseNumber with a pointer result for nullable JSON fields.
func NumberPtr(value interface{}) *float64 {
	if f, ok := ParseNumber(value); ok {
		return &f
	}
	return nil
}

func parseNumericString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	// Drop currency symbols and whitespace, keep digits, separators, sign.
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	lastComma := strings.LastIndexByte(cleaned, ',')
	lastDot := strings.LastIndexByte(cleaned, '.')

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// Both present: the rightmost one is the decimal separator.
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		// A single comma followed by at most two digits reads as a decimal
		// comma ("99,90"); anything else is a thousands separator.
		if strings.Count(cleaned, ",") == 1 && len(cleaned)-lastComma-1 <= 2 {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
