package value

import (
	"fmt"
	"strconv"

	"skein/internal/types"
)

// AsNumber converts the value to a 32-bit float.
//
//	Number  -> itself
//	String  -> parsed as decimal text, error when malformed
//	Boolean -> 1 for true, 0 for false
func (v Value) AsNumber() (float32, error) {
	switch v.kind {
	case types.KindNumber:
		return v.number, nil
	case types.KindString:
		f, err := strconv.ParseFloat(v.str, 32)
		if err != nil {
			return 0, &ParseNumberError{Text: v.str, Err: err}
		}
		return float32(f), nil
	case types.KindBoolean:
		if v.boolean {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, ErrUninitialized
	}
}

// AsString converts the value to text. Numbers render in their
// shortest decimal form that parses back to the same float; booleans
// render as "true" or "false". Only uninitialized values fail.
func (v Value) AsString() (string, error) {
	switch v.kind {
	case types.KindNumber:
		return formatNumber(v.number), nil
	case types.KindString:
		return v.str, nil
	case types.KindBoolean:
		return strconv.FormatBool(v.boolean), nil
	default:
		return "", ErrUninitialized
	}
}

// AsBool converts the value to a boolean.
//
//	Boolean -> itself
//	Number  -> true when nonzero
//	String  -> exactly "true" or "false", anything else is an error
func (v Value) AsBool() (bool, error) {
	switch v.kind {
	case types.KindBoolean:
		return v.boolean, nil
	case types.KindNumber:
		return v.number != 0, nil
	case types.KindString:
		switch v.str {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return false, &ParseBoolError{Text: v.str}
		}
	default:
		return false, ErrUninitialized
	}
}

// FromAny wraps a Go value. Numeric widths all collapse into the
// 32-bit float representation; anything outside the closed set fails
// with an InvalidTypeError.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case float32:
		return NewNumber(x), nil
	case float64:
		return NewNumber(float32(x)), nil
	case int:
		return NewNumber(float32(x)), nil
	case int8:
		return NewNumber(float32(x)), nil
	case int16:
		return NewNumber(float32(x)), nil
	case int32:
		return NewNumber(float32(x)), nil
	case int64:
		return NewNumber(float32(x)), nil
	case uint:
		return NewNumber(float32(x)), nil
	case uint8:
		return NewNumber(float32(x)), nil
	case uint16:
		return NewNumber(float32(x)), nil
	case uint32:
		return NewNumber(float32(x)), nil
	case uint64:
		return NewNumber(float32(x)), nil
	case uintptr:
		return NewNumber(float32(x)), nil
	case string:
		return NewString(x), nil
	case bool:
		return NewBool(x), nil
	default:
		return Value{}, &InvalidTypeError{GoType: fmt.Sprintf("%T", v)}
	}
}

// Any unwraps the value into its Go representation: float32, string
// or bool. Uninitialized values unwrap to nil.
func (v Value) Any() any {
	switch v.kind {
	case types.KindNumber:
		return v.number
	case types.KindString:
		return v.str
	case types.KindBoolean:
		return v.boolean
	default:
		return nil
	}
}

func formatNumber(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
