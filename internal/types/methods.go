package types

// Method names shared by the operator tables and the function
// library. Codegen resolves an operator against the operand type and
// emits a call to the canonical name, e.g. "Number.Add".
const (
	MethodAdd                  = "Add"
	MethodMinus                = "Minus"
	MethodMultiply             = "Multiply"
	MethodDivide               = "Divide"
	MethodModulo               = "Modulo"
	MethodUnaryMinus           = "UnaryMinus"
	MethodEqualTo              = "EqualTo"
	MethodNotEqualTo           = "NotEqualTo"
	MethodGreaterThan          = "GreaterThan"
	MethodGreaterThanOrEqualTo = "GreaterThanOrEqualTo"
	MethodLessThan             = "LessThan"
	MethodLessThanOrEqualTo    = "LessThanOrEqualTo"
	MethodAnd                  = "And"
	MethodOr                   = "Or"
	MethodXor                  = "Xor"
	MethodNot                  = "Not"
)

func binary(operand, result Type) FunctionType {
	return FunctionType{Params: []Type{operand, operand}, Returns: result}
}

func unary(operand, result Type) FunctionType {
	return FunctionType{Params: []Type{operand}, Returns: result}
}

func numberMethods() map[string]FunctionType {
	n, b := Number(), Boolean()
	return map[string]FunctionType{
		MethodAdd:                  binary(n, n),
		MethodMinus:                binary(n, n),
		MethodMultiply:             binary(n, n),
		MethodDivide:               binary(n, n),
		MethodModulo:               binary(n, n),
		MethodUnaryMinus:           unary(n, n),
		MethodEqualTo:              binary(n, b),
		MethodNotEqualTo:           binary(n, b),
		MethodGreaterThan:          binary(n, b),
		MethodGreaterThanOrEqualTo: binary(n, b),
		MethodLessThan:             binary(n, b),
		MethodLessThanOrEqualTo:    binary(n, b),
	}
}

func stringMethods() map[string]FunctionType {
	s, b := String(), Boolean()
	return map[string]FunctionType{
		MethodAdd:        binary(s, s),
		MethodEqualTo:    binary(s, b),
		MethodNotEqualTo: binary(s, b),
	}
}

func booleanMethods() map[string]FunctionType {
	b := Boolean()
	return map[string]FunctionType{
		MethodEqualTo:    binary(b, b),
		MethodNotEqualTo: binary(b, b),
		MethodAnd:        binary(b, b),
		MethodOr:         binary(b, b),
		MethodXor:        binary(b, b),
		MethodNot:        unary(b, b),
	}
}

// anyMethods carries every method so an Any-typed operand resolves
// whatever operator is applied to it. Checking is left to runtime.
func anyMethods() map[string]FunctionType {
	a := Any()
	return map[string]FunctionType{
		MethodAdd:                  binary(a, a),
		MethodMinus:                binary(a, a),
		MethodMultiply:             binary(a, a),
		MethodDivide:               binary(a, a),
		MethodModulo:               binary(a, a),
		MethodUnaryMinus:           unary(a, a),
		MethodEqualTo:              binary(a, Boolean()),
		MethodNotEqualTo:           binary(a, Boolean()),
		MethodGreaterThan:          binary(a, Boolean()),
		MethodGreaterThanOrEqualTo: binary(a, Boolean()),
		MethodLessThan:             binary(a, Boolean()),
		MethodLessThanOrEqualTo:    binary(a, Boolean()),
		MethodAnd:                  binary(a, Boolean()),
		MethodOr:                   binary(a, Boolean()),
		MethodXor:                  binary(a, Boolean()),
		MethodNot:                  unary(a, Boolean()),
	}
}
