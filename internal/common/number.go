package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseNumberLoose parses amounts typed in Brazilian notation: dots are
// thousand separators and the first comma is the decimal mark, so
// "1.234,56" yields 1234.56. Blank input and non-finite values are rejected
// with ErrInvalidNumber.
func ParseNumberLoose(input string) (float64, error) {
	normalized := strings.TrimSpace(strings.Replace(strings.ReplaceAll(input, ".", ""), ",", ".", 1))
	if normalized == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidNumber)
	}
	n, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, input)
	}
	return n, nil
}
