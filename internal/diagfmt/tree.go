package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"skein/internal/syntax"
)

// Tree writes an indented outline of a decoded script, one branch per
// node, statement and expression. Inspection output, not a stable
// format.
func Tree(w io.Writer, f *syntax.File) {
	fmt.Fprintf(w, "File: %s\n", f.Name)
	if len(f.Tags) > 0 {
		branch(w, "", len(f.Nodes) == 0, fmt.Sprintf("tags: %s", strings.Join(f.Tags, " ")))
	}
	for i := range f.Nodes {
		n := &f.Nodes[i]
		last := i == len(f.Nodes)-1
		branch(w, "", last, nodeLabel(n, i))
		writeNode(w, childPrefix("", last), n)
	}
}

func nodeLabel(n *syntax.Node, idx int) string {
	title, ok := n.Title()
	if !ok || title == "" {
		return fmt.Sprintf("Node[%d]: (untitled) %s", idx, n.Span())
	}
	return fmt.Sprintf("Node[%d]: %q %s", idx, title, n.Span())
}

func writeNode(w io.Writer, prefix string, n *syntax.Node) {
	type row struct {
		label string
		stmt  *syntax.Stmt
	}
	var rows []row
	for _, h := range n.Headers {
		if h.Key == syntax.HeaderTitle {
			continue
		}
		rows = append(rows, row{label: fmt.Sprintf("header %s: %s", h.Key, h.Value)})
	}
	if n.IsRawText() {
		rows = append(rows, row{label: fmt.Sprintf("raw text (%d bytes)", len(n.Body.RawText))})
	}
	for i := range n.Body.Statements {
		rows = append(rows, row{stmt: &n.Body.Statements[i]})
	}

	for i, r := range rows {
		last := i == len(rows)-1
		if r.stmt == nil {
			branch(w, prefix, last, r.label)
			continue
		}
		writeStmt(w, prefix, last, r.stmt)
	}
}

func writeStmt(w io.Writer, prefix string, last bool, s *syntax.Stmt) {
	sub := childPrefix(prefix, last)
	switch s.Kind {
	case syntax.StmtLine:
		branch(w, prefix, last, fmt.Sprintf("Line %s%s", quoteShort(s.Text), tagSuffix(s.Tags)))
		writeExprList(w, sub, s.Substitutions, nil)
	case syntax.StmtCommand:
		branch(w, prefix, last, fmt.Sprintf("Command %s", quoteShort(s.Text)))
		writeExprList(w, sub, s.Substitutions, nil)
	case syntax.StmtSet:
		branch(w, prefix, last, fmt.Sprintf("Set %s %s", s.Variable, s.Assign))
		writeExpr(w, sub, true, s.Value)
	case syntax.StmtDeclare:
		label := fmt.Sprintf("Declare %s", s.Variable)
		if s.TypeName != "" {
			label += " as " + s.TypeName
		}
		branch(w, prefix, last, label)
		writeExpr(w, sub, true, s.Value)
	case syntax.StmtIf:
		branch(w, prefix, last, "If")
		for i := range s.Clauses {
			c := &s.Clauses[i]
			clauseLast := i == len(s.Clauses)-1
			if c.Condition == nil {
				branch(w, sub, clauseLast, "Else")
			} else {
				branch(w, sub, clauseLast, "When")
			}
			inner := childPrefix(sub, clauseLast)
			if c.Condition != nil {
				writeExpr(w, inner, len(c.Body) == 0, c.Condition)
			}
			writeStmtList(w, inner, c.Body)
		}
	case syntax.StmtOptions:
		branch(w, prefix, last, "Options")
		for i := range s.Options {
			o := &s.Options[i]
			optLast := i == len(s.Options)-1
			branch(w, sub, optLast, fmt.Sprintf("Option %s%s", quoteShort(o.Text), tagSuffix(o.Tags)))
			inner := childPrefix(sub, optLast)
			if o.Condition != nil {
				writeExpr(w, inner, len(o.Body) == 0 && len(o.Substitutions) == 0, o.Condition)
			}
			writeExprList(w, inner, o.Substitutions, o.Body)
			writeStmtList(w, inner, o.Body)
		}
	case syntax.StmtJump:
		branch(w, prefix, last, "Jump")
		writeExpr(w, sub, true, s.Target)
	case syntax.StmtCall:
		branch(w, prefix, last, "Call")
		writeExpr(w, sub, true, s.Call)
	default:
		branch(w, prefix, last, s.Kind.String())
	}
}

func writeStmtList(w io.Writer, prefix string, list []syntax.Stmt) {
	for i := range list {
		writeStmt(w, prefix, i == len(list)-1, &list[i])
	}
}

// writeExprList renders substitutions; trailing reports whether more
// rows follow under the same parent.
func writeExprList(w io.Writer, prefix string, subs []*syntax.Expr, following []syntax.Stmt) {
	for i, e := range subs {
		last := i == len(subs)-1 && len(following) == 0
		writeExpr(w, prefix, last, e)
	}
}

func writeExpr(w io.Writer, prefix string, last bool, e *syntax.Expr) {
	if e == nil {
		return
	}
	sub := childPrefix(prefix, last)
	switch e.Kind {
	case syntax.ExprNumber:
		branch(w, prefix, last, fmt.Sprintf("Number %v", e.Number))
	case syntax.ExprString:
		branch(w, prefix, last, fmt.Sprintf("String %s", quoteShort(e.Text)))
	case syntax.ExprBool:
		branch(w, prefix, last, fmt.Sprintf("Bool %v", e.Bool))
	case syntax.ExprVariable:
		branch(w, prefix, last, fmt.Sprintf("Variable %s", e.Name))
	case syntax.ExprUnary:
		branch(w, prefix, last, fmt.Sprintf("Unary %s", e.Op))
		writeExpr(w, sub, true, e.Left)
	case syntax.ExprBinary:
		branch(w, prefix, last, fmt.Sprintf("Binary %s", e.Op))
		writeExpr(w, sub, false, e.Left)
		writeExpr(w, sub, true, e.Right)
	case syntax.ExprCall:
		branch(w, prefix, last, fmt.Sprintf("Call %s", e.Name))
		for i, a := range e.Args {
			writeExpr(w, sub, i == len(e.Args)-1, a)
		}
	default:
		branch(w, prefix, last, e.Kind.String())
	}
}

func branch(w io.Writer, prefix string, last bool, label string) {
	if last {
		fmt.Fprintf(w, "%s└─ %s\n", prefix, label)
		return
	}
	fmt.Fprintf(w, "%s├─ %s\n", prefix, label)
}

func childPrefix(prefix string, last bool) string {
	if last {
		return prefix + "   "
	}
	return prefix + "│  "
}

// tagSuffix renders line/option hashtags as a space-prefixed list, or
// nothing when there are no tags.
func tagSuffix(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range tags {
		b.WriteString(" #")
		b.WriteString(t)
	}
	return b.String()
}

func quoteShort(s string) string {
	const max = 40
	r := []rune(s)
	if len(r) > max {
		s = string(r[:max-3]) + "..."
	}
	return fmt.Sprintf("%q", s)
}
