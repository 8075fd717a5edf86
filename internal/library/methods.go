package library

import (
	"fmt"
	"math"

	"skein/internal/types"
	"skein/internal/value"
)

// registerMethods adds the canonical type-method implementations that
// operator codegen targets: "Number.Add", "Boolean.And" and the rest.
// Signatures come from the type system's own method tables so the two
// never drift apart. The Any methods dispatch on the runtime kind of
// their first operand.
func registerMethods(l *Library) {
	num, str, boolean := types.Number(), types.String(), types.Boolean()

	reg := func(t types.Type, method string, impl func([]value.Value) (value.Value, error)) {
		sig, ok := t.MethodSignature(method)
		if !ok {
			panic(fmt.Sprintf("library: %s has no method %s", t.Format(), method))
		}
		l.Register(t.CanonicalMethodName(method), Function{
			Params:  sig.Params,
			Returns: sig.Returns,
			Impl:    impl,
		})
	}

	reg(num, types.MethodAdd, numBinary(func(a, b float32) float32 { return a + b }))
	reg(num, types.MethodMinus, numBinary(func(a, b float32) float32 { return a - b }))
	reg(num, types.MethodMultiply, numBinary(func(a, b float32) float32 { return a * b }))
	reg(num, types.MethodDivide, numBinary(func(a, b float32) float32 { return a / b }))
	reg(num, types.MethodModulo, numBinary(func(a, b float32) float32 {
		return float32(math.Mod(float64(a), float64(b)))
	}))
	reg(num, types.MethodUnaryMinus, func(args []value.Value) (value.Value, error) {
		a, err := args[0].AsNumber()
		if err != nil {
			return value.Value{}, err
		}
		return value.NewNumber(-a), nil
	})
	reg(num, types.MethodEqualTo, numCompare(func(a, b float32) bool { return a == b }))
	reg(num, types.MethodNotEqualTo, numCompare(func(a, b float32) bool { return a != b }))
	reg(num, types.MethodGreaterThan, numCompare(func(a, b float32) bool { return a > b }))
	reg(num, types.MethodGreaterThanOrEqualTo, numCompare(func(a, b float32) bool { return a >= b }))
	reg(num, types.MethodLessThan, numCompare(func(a, b float32) bool { return a < b }))
	reg(num, types.MethodLessThanOrEqualTo, numCompare(func(a, b float32) bool { return a <= b }))

	reg(str, types.MethodAdd, strBinary(func(a, b string) (value.Value, error) {
		return value.NewString(a + b), nil
	}))
	reg(str, types.MethodEqualTo, strBinary(func(a, b string) (value.Value, error) {
		return value.NewBool(a == b), nil
	}))
	reg(str, types.MethodNotEqualTo, strBinary(func(a, b string) (value.Value, error) {
		return value.NewBool(a != b), nil
	}))

	reg(boolean, types.MethodAnd, boolBinary(func(a, b bool) bool { return a && b }))
	reg(boolean, types.MethodOr, boolBinary(func(a, b bool) bool { return a || b }))
	reg(boolean, types.MethodXor, boolBinary(func(a, b bool) bool { return a != b }))
	reg(boolean, types.MethodEqualTo, boolBinary(func(a, b bool) bool { return a == b }))
	reg(boolean, types.MethodNotEqualTo, boolBinary(func(a, b bool) bool { return a != b }))
	reg(boolean, types.MethodNot, func(args []value.Value) (value.Value, error) {
		a, err := args[0].AsBool()
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBool(!a), nil
	})

	registerAnyMethods(l)
}

// registerAnyMethods wires every Any method to the concrete method
// chosen by the first operand's runtime kind.
func registerAnyMethods(l *Library) {
	anyT := types.Any()
	for _, method := range []string{
		types.MethodAdd, types.MethodMinus, types.MethodMultiply,
		types.MethodDivide, types.MethodModulo, types.MethodUnaryMinus,
		types.MethodEqualTo, types.MethodNotEqualTo,
		types.MethodGreaterThan, types.MethodGreaterThanOrEqualTo,
		types.MethodLessThan, types.MethodLessThanOrEqualTo,
		types.MethodAnd, types.MethodOr, types.MethodXor, types.MethodNot,
	} {
		sig, _ := anyT.MethodSignature(method)
		l.Register(anyT.CanonicalMethodName(method), Function{
			Params:  sig.Params,
			Returns: sig.Returns,
			Impl: func(args []value.Value) (value.Value, error) {
				target, err := dispatchType(method, args)
				if err != nil {
					return value.Value{}, err
				}
				return l.Call(target.CanonicalMethodName(method), args)
			},
		})
	}
}

// dispatchType picks the concrete type that should handle an Any
// method call, based on the method and the first operand.
func dispatchType(method string, args []value.Value) (types.Type, error) {
	if len(args) == 0 {
		return types.Type{}, fmt.Errorf("%s: no operands", method)
	}
	first := args[0]
	if !first.IsInitialized() {
		return types.Type{}, value.ErrUninitialized
	}
	switch method {
	case types.MethodAnd, types.MethodOr, types.MethodXor, types.MethodNot:
		return types.Boolean(), nil
	case types.MethodAdd, types.MethodEqualTo, types.MethodNotEqualTo:
		if first.Kind() == types.KindString {
			return types.String(), nil
		}
		if first.Kind() == types.KindBoolean &&
			(method == types.MethodEqualTo || method == types.MethodNotEqualTo) {
			return types.Boolean(), nil
		}
		return types.Number(), nil
	default:
		return types.Number(), nil
	}
}

func numBinary(f func(a, b float32) float32) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		a, err := args[0].AsNumber()
		if err != nil {
			return value.Value{}, err
		}
		b, err := args[1].AsNumber()
		if err != nil {
			return value.Value{}, err
		}
		return value.NewNumber(f(a, b)), nil
	}
}

func numCompare(f func(a, b float32) bool) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		a, err := args[0].AsNumber()
		if err != nil {
			return value.Value{}, err
		}
		b, err := args[1].AsNumber()
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBool(f(a, b)), nil
	}
}

func strBinary(f func(a, b string) (value.Value, error)) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		a, err := args[0].AsString()
		if err != nil {
			return value.Value{}, err
		}
		b, err := args[1].AsString()
		if err != nil {
			return value.Value{}, err
		}
		return f(a, b)
	}
}

func boolBinary(f func(a, b bool) bool) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		a, err := args[0].AsBool()
		if err != nil {
			return value.Value{}, err
		}
		b, err := args[1].AsBool()
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBool(f(a, b)), nil
	}
}
