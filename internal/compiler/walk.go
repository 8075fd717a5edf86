package compiler

import "skein/internal/syntax"

// forEachStmt calls fn for every statement in the list, including
// statements nested inside if clauses and option bodies. Pointers are
// into the caller's backing arrays, so passes that key maps by
// statement identity all see the same addresses.
func forEachStmt(list []syntax.Stmt, fn func(*syntax.Stmt)) {
	for i := range list {
		s := &list[i]
		fn(s)
		for ci := range s.Clauses {
			forEachStmt(s.Clauses[ci].Body, fn)
		}
		for oi := range s.Options {
			forEachStmt(s.Options[oi].Body, fn)
		}
	}
}

// forEachExpr calls fn for e and every expression under it.
func forEachExpr(e *syntax.Expr, fn func(*syntax.Expr)) {
	if e == nil {
		return
	}
	fn(e)
	forEachExpr(e.Left, fn)
	forEachExpr(e.Right, fn)
	for _, a := range e.Args {
		forEachExpr(a, fn)
	}
}

// stmtExprs calls fn for every expression the statement holds
// directly: substitutions, values, conditions and call targets.
// Nested statement bodies are forEachStmt's job.
func stmtExprs(s *syntax.Stmt, fn func(*syntax.Expr)) {
	for _, sub := range s.Substitutions {
		forEachExpr(sub, fn)
	}
	forEachExpr(s.Value, fn)
	forEachExpr(s.Target, fn)
	forEachExpr(s.Call, fn)
	for ci := range s.Clauses {
		forEachExpr(s.Clauses[ci].Condition, fn)
	}
	for oi := range s.Options {
		o := &s.Options[oi]
		forEachExpr(o.Condition, fn)
		for _, sub := range o.Substitutions {
			forEachExpr(sub, fn)
		}
	}
}
