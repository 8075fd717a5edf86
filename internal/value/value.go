// Package value implements the runtime representation of dialogue
// values: a tagged union of Number, String and Boolean with total,
// exactly-specified coercions between the variants.
//
// Numbers are 32-bit floats. Scripts do arithmetic on them repeatedly,
// so equality between numbers is epsilon-bounded rather than exact.
package value

import (
	"fmt"
	"strconv"

	"skein/internal/types"
)

// Value is one dialogue value. The zero Value is uninitialized and
// fails every conversion with ErrUninitialized.
type Value struct {
	kind    types.Kind
	number  float32
	str     string
	boolean bool
}

// NewNumber wraps a 32-bit float.
func NewNumber(f float32) Value {
	return Value{kind: types.KindNumber, number: f}
}

// NewString wraps a string.
func NewString(s string) Value {
	return Value{kind: types.KindString, str: s}
}

// NewBool wraps a boolean.
func NewBool(b bool) Value {
	return Value{kind: types.KindBoolean, boolean: b}
}

// IsInitialized reports whether the value carries a variant.
func (v Value) IsInitialized() bool { return v.kind != types.KindInvalid }

// Kind returns the variant tag.
func (v Value) Kind() types.Kind { return v.kind }

// TypeOf classifies the value in the compile-time type system.
func (v Value) TypeOf() types.Type {
	switch v.kind {
	case types.KindNumber:
		return types.Number()
	case types.KindString:
		return types.String()
	case types.KindBoolean:
		return types.Boolean()
	default:
		return types.Type{}
	}
}

// Equals compares two values. Numbers compare within epsilon; every
// other pairing, including mismatched variants, compares exactly.
func (v Value) Equals(other Value, epsilon float32) bool {
	if v.kind == types.KindNumber && other.kind == types.KindNumber {
		d := v.number - other.number
		if d < 0 {
			d = -d
		}
		return d < epsilon
	}
	return v == other
}

// String renders the value for disassembly and debug output.
func (v Value) String() string {
	switch v.kind {
	case types.KindNumber:
		return formatNumber(v.number)
	case types.KindString:
		return strconv.Quote(v.str)
	case types.KindBoolean:
		return strconv.FormatBool(v.boolean)
	default:
		return "<uninitialized>"
	}
}

// GoString makes %#v output readable in test failures.
func (v Value) GoString() string {
	return fmt.Sprintf("value.Value(%s)", v.String())
}
