package compiler

import (
	"fmt"

	"skein/internal/diag"
	"skein/internal/library"
	"skein/internal/program"
	"skein/internal/source"
	"skein/internal/syntax"
	"skein/internal/types"
	"skein/internal/value"
)

// generateCode walks every node of every file through a listener, in
// job order, and collects the Program and debug records. Each file
// gets its own listener, so label numbering restarts per file. It
// only runs for full compilations.
func generateCode(st *state, r Result) Result {
	prog := program.New()
	var debugInfos []program.DebugInfo
	for fi := range st.job.Files {
		f := &st.job.Files[fi]
		l := newListener(st, prog)
		l.file = f
		for ni := range f.Nodes {
			n := &f.Nodes[ni]
			l.enterNode()
			for hi := range n.Headers {
				l.exitHeader(&n.Headers[hi])
			}
			l.enterBody(&n.Body)
			l.exitBody(&n.Body)
			l.exitNode()
		}
		debugInfos = append(debugInfos, l.debugInfos...)
	}
	r.Program = prog
	r.DebugInfo = debugInfos
	return r
}

// Operators resolve to methods on the operand's type; the emitted
// call names the canonical method, e.g. "Number.Add".
var binaryMethods = map[syntax.Operator]string{
	syntax.OpAdd: types.MethodAdd,
	syntax.OpSub: types.MethodMinus,
	syntax.OpMul: types.MethodMultiply,
	syntax.OpDiv: types.MethodDivide,
	syntax.OpMod: types.MethodModulo,
	syntax.OpEq:  types.MethodEqualTo,
	syntax.OpNeq: types.MethodNotEqualTo,
	syntax.OpGt:  types.MethodGreaterThan,
	syntax.OpGte: types.MethodGreaterThanOrEqualTo,
	syntax.OpLt:  types.MethodLessThan,
	syntax.OpLte: types.MethodLessThanOrEqualTo,
	syntax.OpAnd: types.MethodAnd,
	syntax.OpOr:  types.MethodOr,
	syntax.OpXor: types.MethodXor,
}

var unaryMethods = map[syntax.Operator]string{
	syntax.OpNot: types.MethodNot,
	syntax.OpNeg: types.MethodUnaryMinus,
}

var assignMethods = map[syntax.AssignOp]string{
	syntax.AssignAdd: types.MethodAdd,
	syntax.AssignSub: types.MethodMinus,
	syntax.AssignMul: types.MethodMultiply,
	syntax.AssignDiv: types.MethodDivide,
	syntax.AssignMod: types.MethodModulo,
}

// addNumbersFunc is the canonical add method the tracking counter
// increments through.
var addNumbersFunc = types.Number().CanonicalMethodName(types.MethodAdd)

// codegen lowers statements and expressions for one node. trackVar
// carries the node's visit counter name when the node is tracked.
type codegen struct {
	*listener
	trackVar string
}

func (v *codegen) errorf(code diag.Code, span source.Span, format string, args ...any) {
	v.bag.Add(diag.NewError(code, v.file.Name, span, fmt.Sprintf(format, args...)))
}

func (v *codegen) visitBody(body []syntax.Stmt) {
	for i := range body {
		v.visitStmt(&body[i])
	}
}

func (v *codegen) visitStmt(s *syntax.Stmt) {
	switch s.Kind {
	case syntax.StmtLine:
		v.visitLine(s)
	case syntax.StmtSet:
		v.visitSet(s)
	case syntax.StmtIf:
		v.visitIf(s)
	case syntax.StmtOptions:
		v.visitOptions(s)
	case syntax.StmtJump:
		v.visitJump(s)
	case syntax.StmtCommand:
		v.visitCommand(s)
	case syntax.StmtCall:
		v.visitExpr(s.Call)
		v.emit(program.OpPop)
	case syntax.StmtDeclare:
		// Consumed by the declarations pass; no code.
	}
}

func (v *codegen) visitLine(s *syntax.Stmt) {
	id, ok := v.stmtIDs[s]
	if !ok {
		panic(fmt.Errorf("node %q: line %q was never assigned an id", v.node.Name, s.Text))
	}
	for _, sub := range s.Substitutions {
		v.visitExpr(sub)
	}
	v.emitAt(program.OpRunLine, s.Span.Start,
		value.NewString(id), value.NewNumber(float32(len(s.Substitutions))))
}

func (v *codegen) visitCommand(s *syntax.Stmt) {
	for _, sub := range s.Substitutions {
		v.visitExpr(sub)
	}
	v.emitAt(program.OpRunCommand, s.Span.Start,
		value.NewString(s.Text), value.NewNumber(float32(len(s.Substitutions))))
}

func (v *codegen) visitSet(s *syntax.Stmt) {
	varType := v.variableType(s.Variable, s.Span)

	if s.Assign == syntax.AssignSet {
		valType := v.visitExpr(s.Value)
		if isConcrete(varType) && isConcrete(valType) && varType.Kind != valType.Kind {
			v.errorf(diag.GenTypeMismatch, s.Span,
				"cannot assign %s to %s, declared as %s",
				valType.Format(), s.Variable, varType.Format())
		}
		v.emitAt(program.OpStoreVariable, s.Span.Start, value.NewString(s.Variable))
		v.emit(program.OpPop)
		return
	}

	// A compound assignment is the variable's current value, the
	// operand, and the operator's method. The variable is pushed
	// first so the method sees it as its left-hand side.
	method := assignMethods[s.Assign]
	v.emitAt(program.OpPushVariable, s.Span.Start, value.NewString(s.Variable))
	valType := v.visitExpr(s.Value)
	if isConcrete(varType) && isConcrete(valType) && varType.Kind != valType.Kind {
		v.errorf(diag.GenTypeMismatch, s.Span,
			"operands of %q are %s and %s; both sides must be the same type",
			s.Assign.String(), varType.Format(), valType.Format())
	}

	recv := resolveOperand(varType, valType)
	if sig, ok := recv.MethodSignature(method); ok {
		v.emit(program.OpPushFloat, value.NewNumber(2))
		v.emit(program.OpCallFunc, value.NewString(recv.CanonicalMethodName(method)))
		if isConcrete(varType) && isConcrete(sig.Returns) && sig.Returns.Kind != varType.Kind {
			v.errorf(diag.GenTypeMismatch, s.Span,
				"%s yields %s, but %s is declared as %s",
				recv.CanonicalMethodName(method), sig.Returns.Format(), s.Variable, varType.Format())
		}
	} else {
		v.errorf(diag.GenUnsupportedOperator, s.Span,
			"operator %q is not defined for %s (no %s)",
			s.Assign.String(), recv.Format(), recv.CanonicalMethodName(method))
	}
	v.emit(program.OpStoreVariable, value.NewString(s.Variable))
	v.emit(program.OpPop)
}

func (v *codegen) visitIf(s *syntax.Stmt) {
	end := v.registerLabel("endif")
	for ci := range s.Clauses {
		c := &s.Clauses[ci]
		if c.Condition == nil {
			v.visitBody(c.Body)
			v.emit(program.OpJumpTo, value.NewString(end))
			continue
		}
		next := v.registerLabel("skipclause")
		t := v.visitExpr(c.Condition)
		v.checkCondition(t, c.Condition.Span)
		v.emit(program.OpJumpIfFalse, value.NewString(next))
		v.visitBody(c.Body)
		v.emit(program.OpJumpTo, value.NewString(end))
		v.addLabel(next)
	}
	v.addLabel(end)
}

func (v *codegen) visitOptions(s *syntax.Stmt) {
	endGroup := v.registerLabel("group_end")

	labels := make([]string, len(s.Options))
	for oi := range s.Options {
		o := &s.Options[oi]
		labels[oi] = v.registerLabel(fmt.Sprintf("option_%d", oi))

		id, ok := v.optIDs[o]
		if !ok {
			panic(fmt.Errorf("node %q: option %q was never assigned an id", v.node.Name, o.Text))
		}

		for _, sub := range o.Substitutions {
			v.visitExpr(sub)
		}
		hasCondition := o.Condition != nil
		if hasCondition {
			t := v.visitExpr(o.Condition)
			v.checkCondition(t, o.Condition.Span)
		}
		v.emitAt(program.OpAddOption, o.Span.Start,
			value.NewString(id),
			value.NewString(labels[oi]),
			value.NewNumber(float32(len(o.Substitutions))),
			value.NewBool(hasCondition))
	}

	v.emitAt(program.OpShowOptions, s.Span.Start)
	v.emit(program.OpJump)

	for oi := range s.Options {
		v.addLabel(labels[oi])
		v.visitBody(s.Options[oi].Body)
		v.emit(program.OpJumpTo, value.NewString(endGroup))
	}
	v.addLabel(endGroup)
}

// visitJump lowers a jump to another node. Leaving through a jump
// completes a visit, so the tracking increment lands before the
// RunNode, mirroring the one exitBody emits on the fall-through path.
func (v *codegen) visitJump(s *syntax.Stmt) {
	if name, ok := s.Target.StringLiteral(); ok {
		v.emit(program.OpPushString, value.NewString(name))
	} else {
		t := v.visitExpr(s.Target)
		if isConcrete(t) && t.Kind != types.KindString {
			v.errorf(diag.GenTypeMismatch, s.Target.Span,
				"jump target must be a String, not %s", t.Format())
		}
	}
	if v.trackVar != "" {
		v.emitTracking(v.trackVar)
	}
	v.emitAt(program.OpRunNode, s.Span.Start)
}

// visitExpr lowers an expression and returns its type. Every branch
// leaves exactly one value on the stack.
func (v *codegen) visitExpr(e *syntax.Expr) types.Type {
	if e == nil {
		return types.Any()
	}
	switch e.Kind {
	case syntax.ExprNumber:
		v.emit(program.OpPushFloat, value.NewNumber(e.Number))
		return types.Number()
	case syntax.ExprString:
		v.emit(program.OpPushString, value.NewString(e.Text))
		return types.String()
	case syntax.ExprBool:
		v.emit(program.OpPushBool, value.NewBool(e.Bool))
		return types.Boolean()
	case syntax.ExprVariable:
		t := v.variableType(e.Name, e.Span)
		v.emit(program.OpPushVariable, value.NewString(e.Name))
		return t
	case syntax.ExprUnary:
		return v.visitUnary(e)
	case syntax.ExprBinary:
		return v.visitBinary(e)
	case syntax.ExprCall:
		return v.visitCall(e)
	default:
		return types.Any()
	}
}

func (v *codegen) visitUnary(e *syntax.Expr) types.Type {
	operand := v.visitExpr(e.Left)
	method := unaryMethods[e.Op]

	recv := operand
	if !isConcrete(recv) {
		recv = types.Any()
	}
	sig, ok := recv.MethodSignature(method)
	if !ok {
		v.errorf(diag.GenUnsupportedOperator, e.Span,
			"operator %q is not defined for %s (no %s)",
			e.Op.String(), recv.Format(), recv.CanonicalMethodName(method))
		return types.Any()
	}
	v.emit(program.OpPushFloat, value.NewNumber(1))
	v.emit(program.OpCallFunc, value.NewString(recv.CanonicalMethodName(method)))
	return sig.Returns
}

func (v *codegen) visitBinary(e *syntax.Expr) types.Type {
	lt := v.visitExpr(e.Left)
	rt := v.visitExpr(e.Right)
	method := binaryMethods[e.Op]

	if isConcrete(lt) && isConcrete(rt) && lt.Kind != rt.Kind {
		v.errorf(diag.GenTypeMismatch, e.Span,
			"operands of %q are %s and %s; both sides must be the same type",
			e.Op.String(), lt.Format(), rt.Format())
	}

	recv := resolveOperand(lt, rt)
	sig, ok := recv.MethodSignature(method)
	if !ok {
		v.errorf(diag.GenUnsupportedOperator, e.Span,
			"operator %q is not defined for %s (no %s)",
			e.Op.String(), recv.Format(), recv.CanonicalMethodName(method))
		return types.Any()
	}
	v.emit(program.OpPushFloat, value.NewNumber(2))
	v.emit(program.OpCallFunc, value.NewString(recv.CanonicalMethodName(method)))
	return sig.Returns
}

func (v *codegen) visitCall(e *syntax.Expr) types.Type {
	f, known := v.lib.Lookup(e.Name)
	if !known {
		v.errorf(diag.GenUnknownFunction, e.Span, "unknown function %s", e.Name)
	} else if !f.CheckArity(len(e.Args)) {
		if f.Variadic {
			v.errorf(diag.GenWrongArgumentCount, e.Span,
				"%s takes at least %d argument(s), got %d",
				e.Name, len(f.Params)-1, len(e.Args))
		} else {
			v.errorf(diag.GenWrongArgumentCount, e.Span,
				"%s takes %d argument(s), got %d",
				e.Name, len(f.Params), len(e.Args))
		}
	}

	for i, arg := range e.Args {
		at := v.visitExpr(arg)
		if !known {
			continue
		}
		expected, ok := paramAt(f, i)
		if ok && isConcrete(expected) && isConcrete(at) && expected.Kind != at.Kind {
			v.errorf(diag.GenTypeMismatch, arg.Span,
				"argument %d of %s must be %s, not %s",
				i+1, e.Name, expected.Format(), at.Format())
		}
	}

	v.emit(program.OpPushFloat, value.NewNumber(float32(len(e.Args))))
	v.emitAt(program.OpCallFunc, e.Span.Start, value.NewString(e.Name))
	if !known {
		return types.Any()
	}
	return f.Returns
}

// variableType resolves a variable's declared type. Undeclared
// variables default to Any and warn once per compilation, not once
// per use.
func (v *codegen) variableType(name string, span source.Span) types.Type {
	if d, ok := v.decls[name]; ok {
		return d.Type
	}
	if _, done := v.warned[name]; !done {
		v.warned[name] = struct{}{}
		v.bag.Add(diag.NewWarning(diag.GenUndeclaredVariable, v.file.Name, span,
			fmt.Sprintf("%s was never declared; treating it as Any", name)))
	}
	return types.Any()
}

func (v *codegen) checkCondition(t types.Type, span source.Span) {
	if isConcrete(t) && t.Kind != types.KindBoolean {
		v.errorf(diag.GenTypeMismatch, span,
			"condition must be a Boolean, not %s", t.Format())
	}
}

func isConcrete(t types.Type) bool {
	return t.IsValid() && t.Kind != types.KindAny
}

// resolveOperand picks the type an operator binds its method on: the
// first concrete operand wins; with none, Any leaves dispatch to the
// runtime's live values.
func resolveOperand(lt, rt types.Type) types.Type {
	if isConcrete(lt) {
		return lt
	}
	if isConcrete(rt) {
		return rt
	}
	return types.Any()
}

// paramAt returns the declared type of argument i; a variadic
// function repeats its final parameter.
func paramAt(f library.Function, i int) (types.Type, bool) {
	if i < len(f.Params) {
		return f.Params[i], true
	}
	if f.Variadic && len(f.Params) > 0 {
		return f.Params[len(f.Params)-1], true
	}
	return types.Type{}, false
}
