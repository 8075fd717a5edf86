package syntax

import (
	"fmt"

	"skein/internal/diag"
	"skein/internal/source"
)

// Validate checks structural invariants the decoder cannot express:
// required children present, else clauses last, raw-text nodes
// carrying text. It returns one diagnostic per defect and never stops
// early; the pipeline owns the decision to continue.
func Validate(f *File) []diag.Diagnostic {
	v := &validator{file: f.Name}
	for i := range f.Nodes {
		v.node(&f.Nodes[i])
	}
	return v.out
}

type validator struct {
	file string
	out  []diag.Diagnostic
}

func (v *validator) errorf(code diag.Code, span source.Span, format string, args ...any) {
	v.out = append(v.out, diag.NewError(code, v.file, span, fmt.Sprintf(format, args...)))
}

func (v *validator) node(n *Node) {
	for _, h := range n.Headers {
		if h.Key == "" {
			v.errorf(diag.TreEmptyHeaderKey, h.Span, "header has an empty key")
		}
	}
	if n.IsRawText() && n.Body.RawText == "" {
		title, _ := n.Title()
		v.errorf(diag.TreMissingBody, n.Span(), "raw text node %q has no body text", title)
	}
	v.stmts(n.Body.Statements)
}

func (v *validator) stmts(list []Stmt) {
	for i := range list {
		v.stmt(&list[i])
	}
}

func (v *validator) stmt(s *Stmt) {
	switch s.Kind {
	case StmtLine:
		v.exprs(s.Substitutions)
	case StmtSet:
		if s.Variable == "" {
			v.errorf(diag.TreInvalidStatement, s.Span, "set statement has no variable")
		}
		if s.Assign == AssignInvalid {
			v.errorf(diag.TreInvalidStatement, s.Span, "set statement has no operator")
		}
		if s.Value == nil {
			v.errorf(diag.TreInvalidStatement, s.Span, "set statement has no value")
		} else {
			v.expr(s.Value)
		}
	case StmtIf:
		if len(s.Clauses) == 0 {
			v.errorf(diag.TreInvalidStatement, s.Span, "if statement has no clauses")
		}
		for i, c := range s.Clauses {
			if c.Condition == nil && i != len(s.Clauses)-1 {
				v.errorf(diag.TreInvalidStatement, c.Span, "else clause must be last")
			}
			if c.Condition != nil {
				v.expr(c.Condition)
			}
			v.stmts(c.Body)
		}
	case StmtOptions:
		if len(s.Options) == 0 {
			v.errorf(diag.TreInvalidStatement, s.Span, "options statement has no options")
		}
		for i := range s.Options {
			o := &s.Options[i]
			v.exprs(o.Substitutions)
			if o.Condition != nil {
				v.expr(o.Condition)
			}
			v.stmts(o.Body)
		}
	case StmtJump:
		if s.Target == nil {
			v.errorf(diag.TreInvalidStatement, s.Span, "jump statement has no destination")
		} else {
			v.expr(s.Target)
		}
	case StmtCommand:
		if s.Text == "" {
			v.errorf(diag.TreInvalidStatement, s.Span, "command statement has no text")
		}
		v.exprs(s.Substitutions)
	case StmtCall:
		if s.Call == nil || s.Call.Kind != ExprCall {
			v.errorf(diag.TreInvalidStatement, s.Span, "call statement must wrap a call expression")
		} else {
			v.expr(s.Call)
		}
	case StmtDeclare:
		if s.Variable == "" {
			v.errorf(diag.TreInvalidStatement, s.Span, "declare statement has no variable")
		}
		if s.Value == nil {
			v.errorf(diag.TreInvalidStatement, s.Span, "declare statement has no default value")
		} else {
			v.expr(s.Value)
		}
	default:
		v.errorf(diag.TreInvalidStatement, s.Span, "statement has unknown kind %d", s.Kind)
	}
}

func (v *validator) exprs(list []*Expr) {
	for _, e := range list {
		v.expr(e)
	}
}

func (v *validator) expr(e *Expr) {
	if e == nil {
		return
	}
	switch e.Kind {
	case ExprNumber, ExprString, ExprBool:
	case ExprVariable:
		if e.Name == "" {
			v.errorf(diag.TreInvalidExpression, e.Span, "variable expression has no name")
		}
	case ExprUnary:
		if !e.Op.IsUnary() {
			v.errorf(diag.TreInvalidExpression, e.Span, "operator %q is not unary", e.Op)
		}
		if e.Left == nil {
			v.errorf(diag.TreInvalidExpression, e.Span, "unary expression has no operand")
		} else {
			v.expr(e.Left)
		}
	case ExprBinary:
		if e.Op == OpInvalid || e.Op.IsUnary() {
			v.errorf(diag.TreInvalidExpression, e.Span, "operator %q is not binary", e.Op)
		}
		if e.Left == nil || e.Right == nil {
			v.errorf(diag.TreInvalidExpression, e.Span, "binary expression is missing an operand")
		}
		v.expr(e.Left)
		v.expr(e.Right)
	case ExprCall:
		if e.Name == "" {
			v.errorf(diag.TreInvalidExpression, e.Span, "call expression has no function name")
		}
		v.exprs(e.Args)
	default:
		v.errorf(diag.TreInvalidExpression, e.Span, "expression has unknown kind %d", e.Kind)
	}
}
