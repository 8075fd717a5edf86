package library

import (
	"testing"

	"skein/internal/types"
	"skein/internal/value"
)

func TestRegisterReplaces(t *testing.T) {
	l := New()
	l.Register("f", Function{Returns: types.Number()})
	l.Register("f", Function{Returns: types.String()})
	f, ok := l.Lookup("f")
	if !ok || f.Returns.Kind != types.KindString {
		t.Fatalf("Lookup after replace = %+v, %v", f, ok)
	}
	if l.Len() != 1 {
		t.Fatalf("Len = %d", l.Len())
	}
}

func TestCheckArity(t *testing.T) {
	fixed := Function{Params: []types.Type{types.Number(), types.Number()}}
	if fixed.CheckArity(1) || !fixed.CheckArity(2) || fixed.CheckArity(3) {
		t.Fatalf("fixed arity check wrong")
	}
	variadic := Function{Params: []types.Type{types.String(), types.Any()}, Variadic: true}
	if variadic.CheckArity(0) {
		t.Fatalf("variadic accepted too few")
	}
	if !variadic.CheckArity(1) || !variadic.CheckArity(5) {
		t.Fatalf("variadic rejected valid count")
	}
}

func TestMergeAndClone(t *testing.T) {
	base := New()
	base.Register("a", Function{Returns: types.Number()})

	ext := New()
	ext.Register("b", Function{Returns: types.String()})

	merged := base.Clone()
	merged.Merge(ext)
	if merged.Len() != 2 {
		t.Fatalf("merged Len = %d", merged.Len())
	}
	if _, ok := base.Lookup("b"); ok {
		t.Fatalf("merge mutated the source library")
	}
}

func TestCallUnknownAndUnbound(t *testing.T) {
	l := New()
	if _, err := l.Call("nope", nil); err == nil {
		t.Fatalf("unknown function call succeeded")
	}
	l.Register("visited", Function{Params: []types.Type{types.String()}, Returns: types.Boolean()})
	if _, err := l.Call("visited", []value.Value{value.NewString("Start")}); err == nil {
		t.Fatalf("unbound function call succeeded")
	}
}

func TestCallChecksArity(t *testing.T) {
	l := StandardSeeded(1)
	_, err := l.Call("floor", []value.Value{value.NewNumber(1), value.NewNumber(2)})
	if err == nil {
		t.Fatalf("arity violation accepted")
	}
}

func TestFunctionType(t *testing.T) {
	f := Function{Params: []types.Type{types.String()}, Returns: types.Boolean()}
	ft := f.Type()
	if ft.Kind != types.KindFunction {
		t.Fatalf("Type().Kind = %v", ft.Kind)
	}
	if got := ft.Format(); got != "(String) -> Boolean" {
		t.Fatalf("Format = %q", got)
	}
}
