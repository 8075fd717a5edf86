package syntax

import (
	"fmt"

	"skein/internal/source"
)

// ExprKind discriminates expression nodes.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprNumber
	ExprString
	ExprBool
	ExprVariable
	ExprUnary
	ExprBinary
	ExprCall
)

var exprKindNames = map[ExprKind]string{
	ExprNumber:   "number",
	ExprString:   "string",
	ExprBool:     "bool",
	ExprVariable: "variable",
	ExprUnary:    "unary",
	ExprBinary:   "binary",
	ExprCall:     "call",
}

var exprKindValues = invert(exprKindNames)

func (k ExprKind) String() string {
	if s, ok := exprKindNames[k]; ok {
		return s
	}
	return "invalid"
}

func (k ExprKind) MarshalJSON() ([]byte, error) {
	return marshalName(exprKindNames, k, "expression kind")
}

func (k *ExprKind) UnmarshalJSON(data []byte) error {
	return unmarshalName(exprKindValues, data, k, "expression kind")
}

// Operator is the operator token of a unary or binary expression.
type Operator uint8

const (
	OpInvalid Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpGt
	OpGte
	OpLt
	OpLte
	OpAnd
	OpOr
	OpXor
	OpNot
	OpNeg
)

var operatorNames = map[Operator]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpEq:  "==",
	OpNeq: "!=",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
	OpAnd: "and",
	OpOr:  "or",
	OpXor: "xor",
	OpNot: "not",
	OpNeg: "neg",
}

var operatorValues = invert(operatorNames)

func (o Operator) String() string {
	if s, ok := operatorNames[o]; ok {
		return s
	}
	return "invalid"
}

func (o Operator) MarshalJSON() ([]byte, error) {
	return marshalName(operatorNames, o, "operator")
}

func (o *Operator) UnmarshalJSON(data []byte) error {
	return unmarshalName(operatorValues, data, o, "operator")
}

// IsUnary reports whether the operator takes a single operand.
func (o Operator) IsUnary() bool { return o == OpNot || o == OpNeg }

// Expr is one expression node. Which fields are meaningful depends on
// Kind:
//
//	ExprNumber    Number
//	ExprString    Text
//	ExprBool      Bool
//	ExprVariable  Name (with the leading "$")
//	ExprUnary     Op, Left
//	ExprBinary    Op, Left, Right
//	ExprCall      Name, Args
type Expr struct {
	Kind   ExprKind    `json:"kind"`
	Number float32     `json:"number,omitempty"`
	Text   string      `json:"text,omitempty"`
	Bool   bool        `json:"bool,omitempty"`
	Name   string      `json:"name,omitempty"`
	Op     Operator    `json:"op,omitempty"`
	Left   *Expr       `json:"left,omitempty"`
	Right  *Expr       `json:"right,omitempty"`
	Args   []*Expr     `json:"args,omitempty"`
	Span   source.Span `json:"span"`
}

// StringLiteral returns the text of a string-literal expression.
func (e *Expr) StringLiteral() (string, bool) {
	if e == nil || e.Kind != ExprString {
		return "", false
	}
	return e.Text, true
}

func invert[K comparable, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

func marshalName[K comparable](names map[K]string, k K, what string) ([]byte, error) {
	s, ok := names[k]
	if !ok {
		return nil, fmt.Errorf("unknown %s %v", what, k)
	}
	return []byte(`"` + s + `"`), nil
}

func unmarshalName[K comparable](values map[string]K, data []byte, dst *K, what string) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%s must be a JSON string, got %s", what, data)
	}
	s := string(data[1 : len(data)-1])
	v, ok := values[s]
	if !ok {
		return fmt.Errorf("unknown %s %q", what, s)
	}
	*dst = v
	return nil
}
