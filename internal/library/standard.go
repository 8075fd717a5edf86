package library

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"skein/internal/types"
	"skein/internal/value"
)

// VisitedVariablePrefix starts the internal variables the tracking
// instrumentation counts node visits in.
const VisitedVariablePrefix = "$Skein.Internal.Visiting."

// VisitedVariableName derives the tracking variable for a node. The
// mapping is deterministic so compiler, runtime and tooling agree on
// it without coordination.
func VisitedVariableName(node string) string {
	return VisitedVariablePrefix + node
}

// Standard returns the library every compilation starts from. Random
// functions draw from a source seeded at call time; use
// StandardSeeded for reproducible draws.
func Standard() *Library {
	return StandardSeeded(time.Now().UnixNano())
}

// StandardSeeded is Standard with a fixed random seed.
func StandardSeeded(seed int64) *Library {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // dialogue randomness, not security
	l := New()

	num, str, boolean, anyT := types.Number(), types.String(), types.Boolean(), types.Any()

	// Visit tracking. Implementations need the host's variable
	// storage, so only the signatures are registered here.
	l.Register("visited", Function{Params: []types.Type{str}, Returns: boolean})
	l.Register("visited_count", Function{Params: []types.Type{str}, Returns: num})

	l.Register("random", Function{
		Returns: num,
		Impl: func([]value.Value) (value.Value, error) {
			return value.NewNumber(rng.Float32()), nil
		},
	})
	l.Register("random_range", Function{
		Params: []types.Type{num, num}, Returns: num,
		Impl: func(args []value.Value) (value.Value, error) {
			lo, err := args[0].AsNumber()
			if err != nil {
				return value.Value{}, err
			}
			hi, err := args[1].AsNumber()
			if err != nil {
				return value.Value{}, err
			}
			a, b := int(math.Floor(float64(lo))), int(math.Floor(float64(hi)))
			if b < a {
				return value.Value{}, fmt.Errorf("random_range: %v > %v", lo, hi)
			}
			return value.NewNumber(float32(a + rng.Intn(b-a+1))), nil
		},
	})
	l.Register("dice", Function{
		Params: []types.Type{num}, Returns: num,
		Impl: func(args []value.Value) (value.Value, error) {
			sides, err := args[0].AsNumber()
			if err != nil {
				return value.Value{}, err
			}
			n := int(sides)
			if n < 1 {
				return value.Value{}, fmt.Errorf("dice: %v sides", sides)
			}
			return value.NewNumber(float32(1 + rng.Intn(n))), nil
		},
	})

	registerNumeric(l, "round", func(f float64) float64 { return math.Round(f) })
	registerNumeric(l, "floor", math.Floor)
	registerNumeric(l, "ceil", math.Ceil)
	registerNumeric(l, "inc", func(f float64) float64 {
		if c := math.Ceil(f); c != f {
			return c
		}
		return f + 1
	})
	registerNumeric(l, "dec", func(f float64) float64 {
		if fl := math.Floor(f); fl != f {
			return fl
		}
		return f - 1
	})
	registerNumeric(l, "decimal", func(f float64) float64 { return f - math.Trunc(f) })
	registerNumeric(l, "int", math.Trunc)

	// Explicit conversions, one per constructable type.
	l.Register("number", Function{
		Params: []types.Type{anyT}, Returns: num,
		Impl: func(args []value.Value) (value.Value, error) {
			f, err := args[0].AsNumber()
			if err != nil {
				return value.Value{}, err
			}
			return value.NewNumber(f), nil
		},
	})
	l.Register("string", Function{
		Params: []types.Type{anyT}, Returns: str,
		Impl: func(args []value.Value) (value.Value, error) {
			s, err := args[0].AsString()
			if err != nil {
				return value.Value{}, err
			}
			return value.NewString(s), nil
		},
	})
	l.Register("bool", Function{
		Params: []types.Type{anyT}, Returns: boolean,
		Impl: func(args []value.Value) (value.Value, error) {
			b, err := args[0].AsBool()
			if err != nil {
				return value.Value{}, err
			}
			return value.NewBool(b), nil
		},
	})

	registerMethods(l)
	return l
}

func registerNumeric(l *Library, name string, f func(float64) float64) {
	l.Register(name, Function{
		Params:  []types.Type{types.Number()},
		Returns: types.Number(),
		Impl: func(args []value.Value) (value.Value, error) {
			n, err := args[0].AsNumber()
			if err != nil {
				return value.Value{}, err
			}
			return value.NewNumber(float32(f(float64(n)))), nil
		},
	})
}
