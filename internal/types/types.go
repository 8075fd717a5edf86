// Package types defines the closed set of value types a dialogue
// script can produce and the method tables operator resolution uses.
//
// There is no subtyping: every variant stands on its own, and adding a
// variant means extending every switch in this package. That is
// deliberate; a new type must decide its conversions and methods
// explicitly rather than inherit them.
package types

import (
	"fmt"
	"strings"
)

// Kind discriminates the Type union.
type Kind uint8

const (
	// KindInvalid marks a value that has not been assigned a type yet.
	// It only appears during compilation, never in a finished program.
	KindInvalid Kind = iota
	KindAny
	KindBoolean
	KindFunction
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "Any"
	case KindBoolean:
		return "Boolean"
	case KindFunction:
		return "Function"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	default:
		return "undefined"
	}
}

// Type is one variant of the closed type set. The zero value is the
// undefined type. Func is non-nil only when Kind is KindFunction.
type Type struct {
	Kind Kind
	Func *FunctionType
}

// FunctionType carries a function signature. Returns.Kind may be
// KindInvalid while inference is still running.
type FunctionType struct {
	Params  []Type
	Returns Type
}

func Any() Type     { return Type{Kind: KindAny} }
func Boolean() Type { return Type{Kind: KindBoolean} }
func Number() Type  { return Type{Kind: KindNumber} }
func String() Type  { return Type{Kind: KindString} }

// Function wraps a signature into a Type.
func Function(ft FunctionType) Type {
	return Type{Kind: KindFunction, Func: &ft}
}

// IsValid reports whether t has been assigned a variant.
func (t Type) IsValid() bool { return t.Kind != KindInvalid }

// Format renders the type for diagnostics. Undefined types render as
// "undefined" and functions render their full signature.
func (t Type) Format() string {
	switch t.Kind {
	case KindFunction:
		if t.Func == nil {
			return "Function"
		}
		return t.Func.Format()
	default:
		return t.Kind.String()
	}
}

func (t Type) String() string { return t.Format() }

// Format renders a signature such as "(Number, Number) -> Boolean".
func (ft FunctionType) Format() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range ft.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Format())
	}
	sb.WriteString(") -> ")
	sb.WriteString(ft.Returns.Format())
	return sb.String()
}

// HasMethod reports whether the method table of t contains name.
func (t Type) HasMethod(name string) bool {
	_, ok := t.Properties().Methods[name]
	return ok
}

// MethodSignature looks up the signature of a method on t.
func (t Type) MethodSignature(name string) (FunctionType, bool) {
	ft, ok := t.Properties().Methods[name]
	return ft, ok
}

// CanonicalMethodName joins the type name and method name into the
// key the function library registers implementations under, for
// example "Number.Add". It does not check that the method exists.
func (t Type) CanonicalMethodName(method string) string {
	return fmt.Sprintf("%s.%s", t.Properties().Name, method)
}

// ExplicitlyConstructable lists the types a script author can name in
// a declaration. Function types are built by the compiler only.
func ExplicitlyConstructable() []Type {
	return []Type{Any(), Number(), String(), Boolean()}
}

// ParseName maps a user-written type name to a Type.
func ParseName(name string) (Type, bool) {
	switch name {
	case "Any":
		return Any(), true
	case "Boolean":
		return Boolean(), true
	case "Number":
		return Number(), true
	case "String":
		return String(), true
	default:
		return Type{}, false
	}
}

// FromGo classifies a Go value. All numeric widths map to Number.
func FromGo(v any) (Type, bool) {
	switch v.(type) {
	case float32, float64,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr:
		return Number(), true
	case string:
		return String(), true
	case bool:
		return Boolean(), true
	default:
		return Type{}, false
	}
}
