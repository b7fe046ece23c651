package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// ClampUnit clamps a rate or fraction to [0,1]. Sample generators emit
// values in range already; this is applied at generation time only, per
// the ingestion contract (uploaded data is not re-validated).
func ClampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseFloat parses a numeric CSV field, tolerating surrounding
// whitespace, a leading currency symbol, and thousands separators.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty numeric field")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", s, err)
	}
	return v, nil
}
