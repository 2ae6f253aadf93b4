package completeness

import (
	"fmt"
	"strconv"
	"strings"
)

// Formula is a deferred completeness ratio: Filled of Total rows held a value.
// The zero variant (Filled == 0) serializes without a denominator.
type Formula struct {
	Filled int
	Total  int
}

// IsZero reports whether f is the zero variant.
func (f Formula) IsZero() bool { return f.Filled == 0 }

// String returns the spreadsheet formula text, e.g. "=3/4*100" or "=0".
func (f Formula) String() string { return Encode(f.Filled, f.Total) }

// Percent evaluates the ratio. The zero variant and an empty denominator yield 0.
func (f Formula) Percent() float64 {
	if f.IsZero() || f.Total == 0 {
		return 0
	}
	return float64(f.Filled) / float64(f.Total) * 100
}

// Encode serializes a (filled, total) pair. total is not validated.
func Encode(filled, total int) string {
	if filled == 0 {
		return "=0"
	}
	return "=" + strconv.Itoa(filled) + "/" + strconv.Itoa(total) + "*100"
}

// Decode evaluates a formula string produced by Encode. Strings without a
// '/' decode to 0.
func Decode(value string) (float64, error) {
	if !strings.Contains(value, "/") {
		return 0, nil
	}
	num, den, err := splitFraction(value)
	if err != nil {
		return 0, err
	}
	if den == 0 {
		return 0, &FormatError{Msg: fmt.Sprintf("formula %q has a zero denominator", value)}
	}
	return (num / den) * 100, nil
}

// ParseFormula is the inverse of Formula.String for values whose parts are
// integral. Strings without a '/' parse as the zero variant.
func ParseFormula(value string) (Formula, error) {
	if !strings.Contains(value, "/") {
		return Formula{}, nil
	}
	num, den, err := splitFraction(value)
	if err != nil {
		return Formula{}, err
	}
	if num != float64(int(num)) || den != float64(int(den)) {
		return Formula{}, &FormatError{Msg: fmt.Sprintf("formula %q has non-integral parts", value)}
	}
	return Formula{Filled: int(num), Total: int(den)}, nil
}

func splitFraction(value string) (float64, float64, error) {
	parts := strings.Split(value, "/")
	head := parts[0]
	if head != "" {
		head = head[1:] // drop the leading '='
	}
	numText := head
	denText := strings.Split(parts[1], "*")[0]
	num, err := strconv.ParseFloat(strings.TrimSpace(numText), 64)
	if err != nil {
		return 0, 0, &FormatError{Msg: fmt.Sprintf("formula %q: numerator %q is not numeric", value, numText)}
	}
	den, err := strconv.ParseFloat(strings.TrimSpace(denText), 64)
	if err != nil {
		return 0, 0, &FormatError{Msg: fmt.Sprintf("formula %q: denominator %q is not numeric", value, denText)}
	}
	return num, den, nil
}
