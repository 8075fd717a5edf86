// Package testkit builds syntax-tree fixtures and checks compiled
// programs against structural invariants. Tests across the module use
// it instead of hand-writing spans.
package testkit

import (
	"skein/internal/source"
	"skein/internal/syntax"
)

// NewFile lays out nodes as if the script had one header or statement
// per line, top to bottom, so fixture positions are deterministic
// without spelling out spans.
func NewFile(name string, nodes ...syntax.Node) syntax.File {
	line := 0
	for i := range nodes {
		line = layoutNode(&nodes[i], line)
	}
	return syntax.File{Name: name, Nodes: nodes}
}

// TaggedFile is NewFile with file-level hashtags.
func TaggedFile(name string, tags []string, nodes ...syntax.Node) syntax.File {
	f := NewFile(name, nodes...)
	f.Tags = tags
	return f
}

// NewNode builds a node with just a title header.
func NewNode(title string, stmts ...syntax.Stmt) syntax.Node {
	return syntax.Node{
		Headers: []syntax.Header{{Key: syntax.HeaderTitle, Value: title}},
		Body:    syntax.Body{Statements: stmts},
	}
}

// TaggedNode builds a node with a title and a tags header.
func TaggedNode(title, tags string, stmts ...syntax.Stmt) syntax.Node {
	return syntax.Node{
		Headers: []syntax.Header{
			{Key: syntax.HeaderTitle, Value: title},
			{Key: syntax.HeaderTags, Value: tags},
		},
		Body: syntax.Body{Statements: stmts},
	}
}

// HeaderNode builds a node from explicit headers.
func HeaderNode(headers []syntax.Header, stmts ...syntax.Stmt) syntax.Node {
	return syntax.Node{Headers: headers, Body: syntax.Body{Statements: stmts}}
}

// RawNode builds a raw-text node.
func RawNode(title, text string) syntax.Node {
	return syntax.Node{
		Headers: []syntax.Header{
			{Key: syntax.HeaderTitle, Value: title},
			{Key: syntax.HeaderTags, Value: syntax.TagRawText},
		},
		Body: syntax.Body{RawText: text},
	}
}

// Line builds a line statement; tags may include a #line: id.
func Line(text string, tags ...string) syntax.Stmt {
	return syntax.Stmt{Kind: syntax.StmtLine, Text: text, Tags: tags}
}

// LineSub builds a line statement with substitution expressions.
func LineSub(text string, subs []*syntax.Expr, tags ...string) syntax.Stmt {
	return syntax.Stmt{Kind: syntax.StmtLine, Text: text, Tags: tags, Substitutions: subs}
}

// Set builds an assignment statement.
func Set(variable string, op syntax.AssignOp, v *syntax.Expr) syntax.Stmt {
	return syntax.Stmt{Kind: syntax.StmtSet, Variable: variable, Assign: op, Value: v}
}

// Declare builds a declare statement; typeName may be empty.
func Declare(variable string, v *syntax.Expr, typeName string) syntax.Stmt {
	return syntax.Stmt{Kind: syntax.StmtDeclare, Variable: variable, Value: v, TypeName: typeName}
}

// If builds an if statement from clauses.
func If(clauses ...syntax.IfClause) syntax.Stmt {
	return syntax.Stmt{Kind: syntax.StmtIf, Clauses: clauses}
}

// Clause builds one arm of an if statement; cond nil means else.
func Clause(cond *syntax.Expr, body ...syntax.Stmt) syntax.IfClause {
	return syntax.IfClause{Condition: cond, Body: body}
}

// Options builds a shortcut-option statement.
func Options(opts ...syntax.Option) syntax.Stmt {
	return syntax.Stmt{Kind: syntax.StmtOptions, Options: opts}
}

// Opt builds one shortcut option; cond may be nil.
func Opt(text string, cond *syntax.Expr, body ...syntax.Stmt) syntax.Option {
	return syntax.Option{Text: text, Condition: cond, Body: body}
}

// TaggedOpt is Opt with line tags.
func TaggedOpt(text string, tags []string, cond *syntax.Expr, body ...syntax.Stmt) syntax.Option {
	o := Opt(text, cond, body...)
	o.Tags = tags
	return o
}

// Jump builds a jump statement.
func Jump(target *syntax.Expr) syntax.Stmt {
	return syntax.Stmt{Kind: syntax.StmtJump, Target: target}
}

// Command builds a command statement.
func Command(text string, subs ...*syntax.Expr) syntax.Stmt {
	return syntax.Stmt{Kind: syntax.StmtCommand, Text: text, Substitutions: subs}
}

// CallStmt builds a statement that calls a function and drops the
// result.
func CallStmt(call *syntax.Expr) syntax.Stmt {
	return syntax.Stmt{Kind: syntax.StmtCall, Call: call}
}

// Num builds a number literal.
func Num(f float32) *syntax.Expr {
	return &syntax.Expr{Kind: syntax.ExprNumber, Number: f}
}

// Str builds a string literal.
func Str(s string) *syntax.Expr {
	return &syntax.Expr{Kind: syntax.ExprString, Text: s}
}

// Bool builds a boolean literal.
func Bool(v bool) *syntax.Expr {
	return &syntax.Expr{Kind: syntax.ExprBool, Bool: v}
}

// Var builds a variable reference; name carries the leading "$".
func Var(name string) *syntax.Expr {
	return &syntax.Expr{Kind: syntax.ExprVariable, Name: name}
}

// Bin builds a binary expression.
func Bin(op syntax.Operator, l, r *syntax.Expr) *syntax.Expr {
	return &syntax.Expr{Kind: syntax.ExprBinary, Op: op, Left: l, Right: r}
}

// Un builds a unary expression.
func Un(op syntax.Operator, operand *syntax.Expr) *syntax.Expr {
	return &syntax.Expr{Kind: syntax.ExprUnary, Op: op, Left: operand}
}

// Call builds a function-call expression.
func Call(name string, args ...*syntax.Expr) *syntax.Expr {
	return &syntax.Expr{Kind: syntax.ExprCall, Name: name, Args: args}
}

// layoutNode assigns line numbers: one line per header, one for the
// body delimiter, one per statement, one for the closing token.
func layoutNode(n *syntax.Node, line int) int {
	for hi := range n.Headers {
		h := &n.Headers[hi]
		h.Span = headerSpan(line, h)
		line++
	}
	line++ // body delimiter
	n.Body.Start = source.Position{Line: line}
	line = layoutStmts(n.Body.Statements, line)
	n.Body.End = source.Position{Line: line}
	line++
	return line
}

func layoutStmts(list []syntax.Stmt, line int) int {
	for i := range list {
		line = layoutStmt(&list[i], line)
	}
	return line
}

func layoutStmt(s *syntax.Stmt, line int) int {
	s.Span = lineSpan(line)
	stampStmtExprs(s, s.Span)
	line++
	for ci := range s.Clauses {
		s.Clauses[ci].Span = s.Span
		line = layoutStmts(s.Clauses[ci].Body, line)
	}
	for oi := range s.Options {
		o := &s.Options[oi]
		o.Span = lineSpan(line)
		stampExpr(o.Condition, o.Span)
		for _, sub := range o.Substitutions {
			stampExpr(sub, o.Span)
		}
		line++
		line = layoutStmts(o.Body, line)
	}
	return line
}

// stampStmtExprs gives every expression of the statement the
// statement's own span; fixtures do not model sub-line precision.
func stampStmtExprs(s *syntax.Stmt, span source.Span) {
	for _, sub := range s.Substitutions {
		stampExpr(sub, span)
	}
	stampExpr(s.Value, span)
	stampExpr(s.Target, span)
	stampExpr(s.Call, span)
	for ci := range s.Clauses {
		stampExpr(s.Clauses[ci].Condition, span)
	}
}

func stampExpr(e *syntax.Expr, span source.Span) {
	if e == nil {
		return
	}
	e.Span = span
	stampExpr(e.Left, span)
	stampExpr(e.Right, span)
	for _, a := range e.Args {
		stampExpr(a, span)
	}
}

func lineSpan(line int) source.Span {
	return source.Span{
		Start: source.Position{Line: line},
		End:   source.Position{Line: line, Character: 1},
	}
}

func headerSpan(line int, h *syntax.Header) source.Span {
	width := len(h.Key) + len(h.Value) + 2
	return source.Span{
		Start: source.Position{Line: line},
		End:   source.Position{Line: line, Character: width},
	}
}
