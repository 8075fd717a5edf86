package types

import "testing"

func TestFormatUndefined(t *testing.T) {
	var zero Type
	if got := zero.Format(); got != "undefined" {
		t.Fatalf("Format = %q, want %q", got, "undefined")
	}
}

func TestFormatFunctionSignature(t *testing.T) {
	ft := Function(FunctionType{
		Params:  []Type{Number(), Number()},
		Returns: Boolean(),
	})
	want := "(Number, Number) -> Boolean"
	if got := ft.Format(); got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormatFunctionUndefinedReturn(t *testing.T) {
	ft := Function(FunctionType{Params: []Type{String()}})
	want := "(String) -> undefined"
	if got := ft.Format(); got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestCanonicalMethodName(t *testing.T) {
	if got := Number().CanonicalMethodName(MethodAdd); got != "Number.Add" {
		t.Fatalf("canonical name = %q, want %q", got, "Number.Add")
	}
	if got := Boolean().CanonicalMethodName(MethodAnd); got != "Boolean.And" {
		t.Fatalf("canonical name = %q, want %q", got, "Boolean.And")
	}
}

func TestMethodTables(t *testing.T) {
	cases := []struct {
		typ    Type
		method string
		want   bool
	}{
		{Number(), MethodAdd, true},
		{Number(), MethodUnaryMinus, true},
		{Number(), MethodAnd, false},
		{String(), MethodAdd, true},
		{String(), MethodMinus, false},
		{Boolean(), MethodXor, true},
		{Boolean(), MethodGreaterThan, false},
		{Any(), MethodAdd, true},
		{Any(), MethodNot, true},
	}
	for _, c := range cases {
		if got := c.typ.HasMethod(c.method); got != c.want {
			t.Fatalf("%s.HasMethod(%s) = %v, want %v", c.typ.Format(), c.method, got, c.want)
		}
	}
}

func TestMethodSignatureComparisonReturnsBoolean(t *testing.T) {
	ft, ok := Number().MethodSignature(MethodLessThan)
	if !ok {
		t.Fatalf("Number has no LessThan")
	}
	if ft.Returns.Kind != KindBoolean {
		t.Fatalf("LessThan returns %s, want Boolean", ft.Returns.Format())
	}
	if len(ft.Params) != 2 || ft.Params[0].Kind != KindNumber {
		t.Fatalf("unexpected params: %+v", ft.Params)
	}
}

func TestExplicitlyConstructableExcludesFunctions(t *testing.T) {
	for _, typ := range ExplicitlyConstructable() {
		if typ.Kind == KindFunction {
			t.Fatalf("function types must not be user constructable")
		}
	}
	if len(ExplicitlyConstructable()) != 4 {
		t.Fatalf("constructable set size = %d, want 4", len(ExplicitlyConstructable()))
	}
}

func TestParseName(t *testing.T) {
	typ, ok := ParseName("Number")
	if !ok || typ.Kind != KindNumber {
		t.Fatalf("ParseName(Number) = %v, %v", typ, ok)
	}
	if _, ok := ParseName("Object"); ok {
		t.Fatalf("ParseName accepted an unknown type name")
	}
}

func TestFromGoNumericWidths(t *testing.T) {
	for _, v := range []any{float32(1), float64(1), int(1), int64(1), uint8(1)} {
		typ, ok := FromGo(v)
		if !ok || typ.Kind != KindNumber {
			t.Fatalf("FromGo(%T) = %v, %v, want Number", v, typ, ok)
		}
	}
	if typ, ok := FromGo("hi"); !ok || typ.Kind != KindString {
		t.Fatalf("FromGo(string) = %v, %v", typ, ok)
	}
	if typ, ok := FromGo(true); !ok || typ.Kind != KindBoolean {
		t.Fatalf("FromGo(bool) = %v, %v", typ, ok)
	}
	if _, ok := FromGo(struct{}{}); ok {
		t.Fatalf("FromGo accepted a struct")
	}
}
