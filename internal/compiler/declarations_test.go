package compiler

import (
	"testing"

	"skein/internal/diag"
	"skein/internal/syntax"
	"skein/internal/testkit"
	"skein/internal/types"
	"skein/internal/value"
)

func countCode(diags []diag.Diagnostic, code diag.Code) int {
	n := 0
	for _, d := range diags {
		if d.Code == code {
			n++
		}
	}
	return n
}

func TestMissingTitleDiagnosedOnce(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.HeaderNode(
			[]syntax.Header{{Key: "speaker", Value: "Ann"}},
			testkit.Line("Hi", "line:hi"),
		))

	r := Compile(&Job{Files: []syntax.File{f}})
	if got := countCode(r.Diagnostics, diag.DecMissingTitle); got != 1 {
		t.Fatalf("missing-title diagnostics = %d, want 1\n%v", got, r.Diagnostics)
	}
	if r.Program != nil {
		t.Fatal("untitled node still produced a program")
	}
	if len(r.DebugInfo) != 1 || r.DebugInfo[0].NodeName != "" {
		t.Fatalf("discarded node left no debug record: %+v", r.DebugInfo)
	}
}

func TestDuplicateNodeDiagnosedOnce(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.NewNode("Start", testkit.Line("first", "line:a")),
		testkit.NewNode("Start", testkit.Line("second", "line:b")),
	)

	r := Compile(&Job{Files: []syntax.File{f}})
	if got := countCode(r.Diagnostics, diag.DecDuplicateNode); got != 1 {
		t.Fatalf("duplicate-node diagnostics = %d, want 1\n%v", got, r.Diagnostics)
	}
	for _, d := range r.Diagnostics {
		if d.Code == diag.DecDuplicateNode && len(d.Notes) != 1 {
			t.Fatalf("duplicate diagnostic lacks a first-definition note: %+v", d)
		}
	}
	// Both definitions still get debug records; the program is gone
	// because a duplicate is an error.
	if len(r.DebugInfo) != 2 {
		t.Fatalf("debug info count = %d, want 2", len(r.DebugInfo))
	}
}

func TestDeclareStatementsCollected(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.NewNode("Start",
			testkit.Declare("$name", testkit.Str("Ann"), ""),
			testkit.Declare("$count", testkit.Num(3), "Number"),
			testkit.Declare("$debt", testkit.Un(syntax.OpNeg, testkit.Num(4)), ""),
		))

	r := Compile(&Job{Files: []syntax.File{f}, Type: TypeCheckOnly})
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Diagnostics)
	}
	if len(r.Declarations) != 3 {
		t.Fatalf("declarations = %+v", r.Declarations)
	}

	byName := make(map[string]Declaration)
	for _, d := range r.Declarations {
		byName[d.Name] = d
	}
	if d := byName["$name"]; d.Type.Kind != types.KindString || !d.Default.Equals(value.NewString("Ann"), 0) {
		t.Fatalf("$name = %+v", d)
	}
	if d := byName["$count"]; d.Type.Kind != types.KindNumber {
		t.Fatalf("$count = %+v", d)
	}
	if d := byName["$debt"]; !d.Default.Equals(value.NewNumber(-4), 1e-6) {
		t.Fatalf("$debt = %+v", d)
	}
	if byName["$name"].Node != "Start" || byName["$name"].File != "a.skein" {
		t.Fatalf("declaration site = %+v", byName["$name"])
	}
}

func TestDeclareRejectsTypeMismatch(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.NewNode("Start",
			testkit.Declare("$x", testkit.Num(1), "String"),
		))

	r := Compile(&Job{Files: []syntax.File{f}, Type: TypeCheckOnly})
	if got := countCode(r.Diagnostics, diag.DecInvalidInitializer); got != 1 {
		t.Fatalf("diagnostics = %v", r.Diagnostics)
	}
}

func TestDeclareRejectsNonLiteral(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.NewNode("Start",
			testkit.Declare("$x", testkit.Bin(syntax.OpAdd, testkit.Num(1), testkit.Num(2)), ""),
		))

	r := Compile(&Job{Files: []syntax.File{f}, Type: TypeCheckOnly})
	if got := countCode(r.Diagnostics, diag.DecInvalidInitializer); got != 1 {
		t.Fatalf("diagnostics = %v", r.Diagnostics)
	}
}

func TestDeclareRejectsUnknownTypeName(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.NewNode("Start",
			testkit.Declare("$x", testkit.Num(1), "Vector"),
		))

	r := Compile(&Job{Files: []syntax.File{f}, Type: TypeCheckOnly})
	if got := countCode(r.Diagnostics, diag.DecInvalidInitializer); got != 1 {
		t.Fatalf("diagnostics = %v", r.Diagnostics)
	}
}

func TestHostDeclarationConflict(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.NewNode("Start",
			testkit.Declare("$gold", testkit.Str("lots"), ""),
		))

	job := &Job{
		Files: []syntax.File{f},
		VariableDeclarations: []Declaration{
			{Name: "$gold", Type: types.Number(), Default: value.NewNumber(0)},
		},
		Type: TypeCheckOnly,
	}
	r := Compile(job)
	if got := countCode(r.Diagnostics, diag.DecConflictingDeclaration); got != 1 {
		t.Fatalf("diagnostics = %v", r.Diagnostics)
	}
}

func TestRepeatedDeclarationWarnsAndKeepsFirst(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.NewNode("Start",
			testkit.Declare("$gold", testkit.Num(5), ""),
		))

	job := &Job{
		Files: []syntax.File{f},
		VariableDeclarations: []Declaration{
			{Name: "$gold", Type: types.Number(), Default: value.NewNumber(0)},
		},
	}
	r := Compile(job)
	if r.HasErrors() {
		t.Fatalf("repeat declaration should warn, not error: %v", r.Diagnostics)
	}
	if got := countCode(r.Diagnostics, diag.DecDuplicateVariable); got != 1 {
		t.Fatalf("diagnostics = %v", r.Diagnostics)
	}
	for _, d := range r.Declarations {
		if d.Name == "$gold" && !d.Default.Equals(value.NewNumber(0), 1e-6) {
			t.Fatalf("first declaration was not kept: %+v", d)
		}
	}
}
