package syntax

import "skein/internal/source"

// StmtKind discriminates statement nodes.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtLine
	StmtSet
	StmtIf
	StmtOptions
	StmtJump
	StmtCommand
	StmtCall
	StmtDeclare
)

var stmtKindNames = map[StmtKind]string{
	StmtLine:    "line",
	StmtSet:     "set",
	StmtIf:      "if",
	StmtOptions: "options",
	StmtJump:    "jump",
	StmtCommand: "command",
	StmtCall:    "call",
	StmtDeclare: "declare",
}

var stmtKindValues = invert(stmtKindNames)

func (k StmtKind) String() string {
	if s, ok := stmtKindNames[k]; ok {
		return s
	}
	return "invalid"
}

func (k StmtKind) MarshalJSON() ([]byte, error) {
	return marshalName(stmtKindNames, k, "statement kind")
}

func (k *StmtKind) UnmarshalJSON(data []byte) error {
	return unmarshalName(stmtKindValues, data, k, "statement kind")
}

// AssignOp is the operator of a set statement.
type AssignOp uint8

const (
	AssignInvalid AssignOp = iota
	AssignSet
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
)

var assignOpNames = map[AssignOp]string{
	AssignSet: "=",
	AssignAdd: "+=",
	AssignSub: "-=",
	AssignMul: "*=",
	AssignDiv: "/=",
	AssignMod: "%=",
}

var assignOpValues = invert(assignOpNames)

func (o AssignOp) String() string {
	if s, ok := assignOpNames[o]; ok {
		return s
	}
	return "invalid"
}

func (o AssignOp) MarshalJSON() ([]byte, error) {
	return marshalName(assignOpNames, o, "assignment operator")
}

func (o *AssignOp) UnmarshalJSON(data []byte) error {
	return unmarshalName(assignOpValues, data, o, "assignment operator")
}

// Stmt is one statement. Which fields are meaningful depends on Kind:
//
//	StmtLine     Text, Substitutions, Tags
//	StmtSet      Variable, Assign, Value
//	StmtIf       Clauses
//	StmtOptions  Options
//	StmtJump     Target
//	StmtCommand  Text, Substitutions
//	StmtCall     Call
//	StmtDeclare  Variable, Value, TypeName
//
// Line and command text carries "{0}"-style placeholders, one per
// substitution expression, already extracted by the front end.
type Stmt struct {
	Kind          StmtKind    `json:"kind"`
	Text          string      `json:"text,omitempty"`
	Tags          []string    `json:"tags,omitempty"`
	Substitutions []*Expr     `json:"substitutions,omitempty"`
	Variable      string      `json:"variable,omitempty"`
	Assign        AssignOp    `json:"assign,omitempty"`
	Value         *Expr       `json:"value,omitempty"`
	TypeName      string      `json:"type,omitempty"`
	Clauses       []IfClause  `json:"clauses,omitempty"`
	Options       []Option    `json:"options,omitempty"`
	Target        *Expr       `json:"target,omitempty"`
	Call          *Expr       `json:"call,omitempty"`
	Span          source.Span `json:"span"`
}

// IfClause is one arm of an if statement. The else arm has a nil
// Condition and must come last.
type IfClause struct {
	Condition *Expr       `json:"condition,omitempty"`
	Body      []Stmt      `json:"body"`
	Span      source.Span `json:"span"`
}

// Option is one shortcut option: a line shown to the player, an
// optional availability condition, and the statements run when the
// option is chosen.
type Option struct {
	Text          string      `json:"text"`
	Tags          []string    `json:"tags,omitempty"`
	Substitutions []*Expr     `json:"substitutions,omitempty"`
	Condition     *Expr       `json:"condition,omitempty"`
	Body          []Stmt      `json:"body"`
	Span          source.Span `json:"span"`
}
