package completeness

import (
	"math"
	"strconv"
)

// Kind identifies the scalar type held by a Value.
type Kind int

const (
	Absent Kind = iota
	Text
	Number
	Bool
)

// Value is a single cell of a source row.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	B    bool
}

// TextValue wraps s as a text cell.
func TextValue(s string) Value { return Value{Kind: Text, Str: s} }

// NumberValue wraps x as a numeric cell.
func NumberValue(x float64) Value { return Value{Kind: Number, Num: x} }

// BoolValue wraps b as a boolean cell.
func BoolValue(b bool) Value { return Value{Kind: Bool, B: b} }

// Truthy reports whether the value is non-empty and non-zero.
func (v Value) Truthy() bool {
	switch v.Kind {
	case Text:
		return v.Str != ""
	case Number:
		return v.Num != 0
	case Bool:
		return v.B
	default:
		return false
	}
}

// Present reports whether the value counts as filled for the per-source
// counter: truthy, or numerically equal to zero (false included).
func (v Value) Present() bool {
	if v.Truthy() {
		return true
	}
	switch v.Kind {
	case Number:
		return v.Num == 0
	case Bool:
		return true
	default:
		return false
	}
}

// Key normalizes the value into a group key. Integral numbers print without
// a fraction so 5 and 5.0 land in the same group.
func (v Value) Key() string {
	switch v.Kind {
	case Text:
		return v.Str
	case Number:
		if v.Num == math.Trunc(v.Num) && math.Abs(v.Num) < 1e15 {
			return strconv.FormatInt(int64(v.Num), 10)
		}
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case Bool:
		if v.B {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}
