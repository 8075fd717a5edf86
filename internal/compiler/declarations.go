package compiler

import (
	"fmt"

	"skein/internal/diag"
	"skein/internal/syntax"
	"skein/internal/types"
	"skein/internal/value"
)

// checkTrees validates the decoded trees and collects file tags. A
// file that fails validation still flows through later passes; they
// tolerate the holes it leaves behind.
func checkTrees(st *state, r Result) Result {
	for fi := range st.job.Files {
		f := &st.job.Files[fi]
		for _, d := range syntax.Validate(f) {
			st.bag.Add(d)
		}
		if len(f.Tags) > 0 {
			r.FileTags[f.Name] = f.Tags
		}
	}
	return r
}

// registerDeclarations resolves every variable declaration and node
// title before any code is generated. Host declarations come first;
// in-script declare statements may repeat them but not contradict
// them. The pass also decides which nodes need visit tracking.
func registerDeclarations(st *state, r Result) Result {
	for _, d := range st.job.VariableDeclarations {
		st.registerDeclaration(d)
	}

	for fi := range st.job.Files {
		f := &st.job.Files[fi]
		for ni := range f.Nodes {
			st.registerNode(f, &f.Nodes[ni])
		}
	}

	r.Declarations = st.declarations()
	return r
}

func (st *state) registerNode(f *syntax.File, n *syntax.Node) {
	title, ok := n.Title()
	if !ok || title == "" {
		st.bag.Add(diag.NewError(diag.DecMissingTitle, f.Name, n.Span(),
			"node has no title header"))
	} else if first, dup := st.nodes[title]; dup {
		st.bag.Add(diag.NewError(diag.DecDuplicateNode, f.Name, n.Span(),
			fmt.Sprintf("node %q is already defined", title)).
			WithNote(first.span, fmt.Sprintf("first defined in %s", first.file)))
	} else {
		st.nodes[title] = nodeSite{file: f.Name, span: n.Span()}
	}

	for _, tag := range n.NodeTags() {
		if tag == syntax.TagTracking && title != "" {
			st.tracking[title] = struct{}{}
		}
	}

	forEachStmt(n.Body.Statements, func(s *syntax.Stmt) {
		if s.Kind == syntax.StmtDeclare {
			st.declareStatement(f.Name, title, s)
		}
		stmtExprs(s, st.trackVisitedCalls)
	})
}

// trackVisitedCalls adds nodes named by literal visited() and
// visited_count() arguments to the tracking set. Computed arguments
// force nothing; the host resolves those against whatever counters
// exist at run time.
func (st *state) trackVisitedCalls(e *syntax.Expr) {
	if e.Kind != syntax.ExprCall || len(e.Args) == 0 {
		return
	}
	if e.Name != "visited" && e.Name != "visited_count" {
		return
	}
	if node, ok := e.Args[0].StringLiteral(); ok && node != "" {
		st.tracking[node] = struct{}{}
	}
}

func (st *state) declareStatement(file, node string, s *syntax.Stmt) {
	if s.Variable == "" || s.Value == nil {
		return // malformed tree, the check pass has diagnosed it
	}
	def, ok := literalValue(s.Value)
	if !ok {
		st.bag.Add(diag.NewError(diag.DecInvalidInitializer, file, s.Span,
			fmt.Sprintf("initial value for %s must be a literal", s.Variable)))
		return
	}

	declared := types.Type{Kind: def.Kind()}
	if s.TypeName != "" {
		named, ok := types.ParseName(s.TypeName)
		if !ok {
			st.bag.Add(diag.NewError(diag.DecInvalidInitializer, file, s.Span,
				fmt.Sprintf("%q is not a declarable type", s.TypeName)))
			return
		}
		if named.Kind != def.Kind() {
			st.bag.Add(diag.NewError(diag.DecInvalidInitializer, file, s.Span,
				fmt.Sprintf("initial value for %s is %s, declared as %s",
					s.Variable, declared.Format(), named.Format())))
			return
		}
		declared = named
	}

	st.registerDeclaration(Declaration{
		Name:    s.Variable,
		Type:    declared,
		Default: def,
		File:    file,
		Node:    node,
		Span:    s.Span,
	})
}

// registerDeclaration records a declaration, diagnosing repeats. The
// first declaration of a name wins; an exact repeat is a warning, a
// repeat with a different type is an error.
func (st *state) registerDeclaration(d Declaration) {
	first, exists := st.decls[d.Name]
	if !exists {
		st.declare(d)
		return
	}

	if first.Type.Kind != d.Type.Kind {
		diagn := diag.NewError(diag.DecConflictingDeclaration, d.File, d.Span,
			fmt.Sprintf("%s is already declared as %s, redeclared as %s",
				d.Name, first.Type.Format(), d.Type.Format()))
		if first.File != "" {
			diagn = diagn.WithNote(first.Span, fmt.Sprintf("first declared in %s", first.File))
		}
		st.bag.Add(diagn)
		return
	}

	diagn := diag.NewWarning(diag.DecDuplicateVariable, d.File, d.Span,
		fmt.Sprintf("%s is already declared", d.Name))
	if first.File != "" {
		diagn = diagn.WithNote(first.Span, fmt.Sprintf("first declared in %s", first.File))
	}
	st.bag.Add(diagn)
}

// literalValue evaluates the constant expressions a declare statement
// accepts: bare literals and a negated number literal.
func literalValue(e *syntax.Expr) (value.Value, bool) {
	if e == nil {
		return value.Value{}, false
	}
	switch e.Kind {
	case syntax.ExprNumber:
		return value.NewNumber(e.Number), true
	case syntax.ExprString:
		return value.NewString(e.Text), true
	case syntax.ExprBool:
		return value.NewBool(e.Bool), true
	case syntax.ExprUnary:
		if e.Op == syntax.OpNeg && e.Left != nil && e.Left.Kind == syntax.ExprNumber {
			return value.NewNumber(-e.Left.Number), true
		}
	}
	return value.Value{}, false
}
