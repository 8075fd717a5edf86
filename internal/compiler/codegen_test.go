package compiler

import (
	"strings"
	"testing"

	"skein/internal/diag"
	"skein/internal/program"
	"skein/internal/syntax"
	"skein/internal/testkit"
	"skein/internal/types"
	"skein/internal/value"
)

// flatten renders instructions one per string, operands space-joined,
// so sequence asserts stay readable.
func flatten(n *program.Node) []string {
	out := make([]string, len(n.Instructions))
	for i, ins := range n.Instructions {
		parts := []string{ins.Op.String()}
		for _, op := range ins.Operands {
			parts = append(parts, op.String())
		}
		out[i] = strings.Join(parts, " ")
	}
	return out
}

func compileOne(t *testing.T, job *Job) Result {
	t.Helper()
	r := Compile(job)
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Diagnostics)
	}
	if err := testkit.CheckProgramInvariants(r.Program); err != nil {
		t.Fatalf("program invariants: %v", err)
	}
	return r
}

func nodeOps(t *testing.T, r Result, name string) []string {
	t.Helper()
	n, ok := r.Program.Node(name)
	if !ok {
		t.Fatalf("node %q missing; have %v", name, r.Program.NodeNames())
	}
	return flatten(n)
}

func assertOps(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("instruction count = %d, want %d\ngot:\n  %s",
			len(got), len(want), strings.Join(got, "\n  "))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("instruction %d = %q, want %q\ngot:\n  %s",
				i, got[i], want[i], strings.Join(got, "\n  "))
		}
	}
}

func TestIfStatementLowering(t *testing.T) {
	f := testkit.NewFile("demo.skein",
		testkit.NewNode("Start",
			testkit.Line("Ready?", "line:ready"),
			testkit.If(
				testkit.Clause(
					testkit.Bin(syntax.OpGte, testkit.Var("$gold"), testkit.Num(10)),
					testkit.Line("Rich!", "line:rich"),
				),
				testkit.Clause(nil,
					testkit.Line("Poor.", "line:poor"),
				),
			),
			testkit.Jump(testkit.Str("End")),
		),
		testkit.NewNode("End",
			testkit.Line("Bye.", "line:bye"),
		),
	)
	job := &Job{
		Files: []syntax.File{f},
		VariableDeclarations: []Declaration{
			{Name: "$gold", Type: types.Number(), Default: value.NewNumber(0)},
		},
	}
	r := compileOne(t, job)

	assertOps(t, nodeOps(t, r, "Start"), []string{
		`RunLine "line:ready" 0`,
		`PushVariable "$gold"`,
		`PushFloat 10`,
		`PushFloat 2`,
		`CallFunc "Number.GreaterThanOrEqualTo"`,
		`JumpIfFalse "L2skipclause"`,
		`RunLine "line:rich" 0`,
		`JumpTo "L1endif"`,
		`RunLine "line:poor" 0`,
		`JumpTo "L1endif"`,
		`PushString "End"`,
		`RunNode`,
		`Stop`,
	})

	n, _ := r.Program.Node("Start")
	for label, offset := range map[string]int32{"L0": 0, "L2skipclause": 8, "L1endif": 10} {
		if got, ok := n.Labels[label]; !ok || got != offset {
			t.Fatalf("label %s = %d (%v), want %d", label, got, ok, offset)
		}
	}
}

func TestOptionsLowering(t *testing.T) {
	f := testkit.NewFile("menu.skein",
		testkit.NewNode("Menu",
			testkit.Options(
				testkit.TaggedOpt("Yes", []string{"line:yes"}, testkit.Var("$ok"),
					testkit.Line("Good.", "line:good")),
				testkit.TaggedOpt("No", []string{"line:no"}, nil),
			),
		))
	job := &Job{
		Files: []syntax.File{f},
		VariableDeclarations: []Declaration{
			{Name: "$ok", Type: types.Boolean(), Default: value.NewBool(false)},
		},
	}
	r := compileOne(t, job)

	assertOps(t, nodeOps(t, r, "Menu"), []string{
		`PushVariable "$ok"`,
		`AddOption "line:yes" "L2option_0" 0 true`,
		`AddOption "line:no" "L3option_1" 0 false`,
		`ShowOptions`,
		`Jump`,
		`RunLine "line:good" 0`,
		`JumpTo "L1group_end"`,
		`JumpTo "L1group_end"`,
		`Stop`,
	})
}

func TestTrackingInstrumentation(t *testing.T) {
	f := testkit.NewFile("vault.skein",
		testkit.TaggedNode("Secret", "tracking",
			testkit.Line("Shh.", "line:s"),
			testkit.Jump(testkit.Str("Out")),
		))
	r := compileOne(t, &Job{Files: []syntax.File{f}})

	increment := []string{
		`PushVariable "$Skein.Internal.Visiting.Secret"`,
		`PushFloat 1`,
		`PushFloat 2`,
		`CallFunc "Number.Add"`,
		`StoreVariable "$Skein.Internal.Visiting.Secret"`,
		`Pop`,
	}
	want := []string{
		`RunLine "line:s" 0`,
		`PushString "Out"`,
	}
	want = append(want, increment...)
	want = append(want, `RunNode`)
	want = append(want, increment...)
	want = append(want, `Stop`)

	assertOps(t, nodeOps(t, r, "Secret"), want)
}

func TestVisitedCallForcesTracking(t *testing.T) {
	f := testkit.NewFile("gate.skein",
		testkit.NewNode("Gate",
			testkit.If(
				testkit.Clause(
					testkit.Call("visited", testkit.Str("Vault")),
					testkit.Line("Again?", "line:again"),
				),
			),
		),
		testkit.NewNode("Vault",
			testkit.Line("Gold!", "line:gold"),
		),
	)
	r := compileOne(t, &Job{Files: []syntax.File{f}})

	ops := nodeOps(t, r, "Vault")
	want := []string{
		`RunLine "line:gold" 0`,
		`PushVariable "$Skein.Internal.Visiting.Vault"`,
		`PushFloat 1`,
		`PushFloat 2`,
		`CallFunc "Number.Add"`,
		`StoreVariable "$Skein.Internal.Visiting.Vault"`,
		`Pop`,
		`Stop`,
	}
	assertOps(t, ops, want)

	gate := nodeOps(t, r, "Gate")
	joined := strings.Join(gate, "\n")
	if !strings.Contains(joined, `CallFunc "visited"`) {
		t.Fatalf("gate does not call visited:\n%s", joined)
	}
}

func TestCompoundAssignmentLowering(t *testing.T) {
	f := testkit.NewFile("wallet.skein",
		testkit.NewNode("Wallet",
			testkit.Set("$gold", syntax.AssignSub, testkit.Num(5)),
		))
	job := &Job{
		Files: []syntax.File{f},
		VariableDeclarations: []Declaration{
			{Name: "$gold", Type: types.Number(), Default: value.NewNumber(0)},
		},
	}
	r := compileOne(t, job)

	assertOps(t, nodeOps(t, r, "Wallet"), []string{
		`PushVariable "$gold"`,
		`PushFloat 5`,
		`PushFloat 2`,
		`CallFunc "Number.Minus"`,
		`StoreVariable "$gold"`,
		`Pop`,
		`Stop`,
	})
}

func TestStringConcatAssignment(t *testing.T) {
	f := testkit.NewFile("msg.skein",
		testkit.NewNode("Msg",
			testkit.Set("$msg", syntax.AssignAdd, testkit.Str("!")),
		))
	job := &Job{
		Files: []syntax.File{f},
		VariableDeclarations: []Declaration{
			{Name: "$msg", Type: types.String(), Default: value.NewString("")},
		},
	}
	r := compileOne(t, job)

	assertOps(t, nodeOps(t, r, "Msg"), []string{
		`PushVariable "$msg"`,
		`PushString "!"`,
		`PushFloat 2`,
		`CallFunc "String.Add"`,
		`StoreVariable "$msg"`,
		`Pop`,
		`Stop`,
	})
}

func TestUndeclaredVariableWarnsOnce(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.NewNode("Start",
			testkit.Set("$mystery", syntax.AssignSet, testkit.Num(1)),
			testkit.LineSub("Total: {0}", []*syntax.Expr{testkit.Var("$mystery")}, "line:t"),
		))
	r := Compile(&Job{Files: []syntax.File{f}})

	if r.HasErrors() {
		t.Fatalf("undeclared variable must warn, not error: %v", r.Diagnostics)
	}
	if got := countCode(r.Diagnostics, diag.GenUndeclaredVariable); got != 1 {
		t.Fatalf("warnings = %d, want 1\n%v", got, r.Diagnostics)
	}
	if r.Program == nil {
		t.Fatal("warnings discarded the program")
	}
}

func TestBinaryOperandTypeMismatch(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.NewNode("Start",
			testkit.Set("$gold", syntax.AssignSet,
				testkit.Bin(syntax.OpAdd, testkit.Num(1), testkit.Str("x"))),
		))
	job := &Job{
		Files: []syntax.File{f},
		VariableDeclarations: []Declaration{
			{Name: "$gold", Type: types.Number(), Default: value.NewNumber(0)},
		},
	}
	r := Compile(job)
	if got := countCode(r.Diagnostics, diag.GenTypeMismatch); got != 1 {
		t.Fatalf("diagnostics = %v", r.Diagnostics)
	}
	if r.Program != nil {
		t.Fatal("type error kept the program")
	}
}

func TestUnsupportedOperatorNamesCanonicalMethod(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.NewNode("Start",
			testkit.Set("$x", syntax.AssignSet,
				testkit.Bin(syntax.OpAnd, testkit.Num(1), testkit.Num(2))),
		))
	r := Compile(&Job{Files: []syntax.File{f}})

	found := false
	for _, d := range r.Diagnostics {
		if d.Code == diag.GenUnsupportedOperator {
			found = true
			if !strings.Contains(d.Message, "Number.And") {
				t.Fatalf("message does not name the method: %q", d.Message)
			}
		}
	}
	if !found {
		t.Fatalf("diagnostics = %v", r.Diagnostics)
	}
}

func TestWrongArgumentCount(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.NewNode("Start", testkit.CallStmt(testkit.Call("dice"))))
	r := Compile(&Job{Files: []syntax.File{f}})
	if got := countCode(r.Diagnostics, diag.GenWrongArgumentCount); got != 1 {
		t.Fatalf("diagnostics = %v", r.Diagnostics)
	}
}

func TestCallArgumentTypeMismatch(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.NewNode("Start", testkit.CallStmt(testkit.Call("dice", testkit.Str("six")))))
	r := Compile(&Job{Files: []syntax.File{f}})
	if got := countCode(r.Diagnostics, diag.GenTypeMismatch); got != 1 {
		t.Fatalf("diagnostics = %v", r.Diagnostics)
	}
}

func TestJumpTargetMustBeString(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.NewNode("Start", testkit.Jump(testkit.Num(3))))
	r := Compile(&Job{Files: []syntax.File{f}})
	if got := countCode(r.Diagnostics, diag.GenTypeMismatch); got != 1 {
		t.Fatalf("diagnostics = %v", r.Diagnostics)
	}
}

func TestConditionMustBeBoolean(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.NewNode("Start",
			testkit.If(
				testkit.Clause(testkit.Num(1), testkit.Line("x", "line:x")),
			),
		))
	r := Compile(&Job{Files: []syntax.File{f}})
	if got := countCode(r.Diagnostics, diag.GenTypeMismatch); got != 1 {
		t.Fatalf("diagnostics = %v", r.Diagnostics)
	}
}

func TestStopCarriesClosingTokenPosition(t *testing.T) {
	f := testkit.NewFile("a.skein",
		testkit.NewNode("Start",
			testkit.Line("One", "line:one"),
			testkit.Line("Two", "line:two"),
		))
	r := compileOne(t, &Job{Files: []syntax.File{f}})

	n, _ := r.Program.Node("Start")
	stop := n.Instructions[len(n.Instructions)-1]
	if stop.Op != program.OpStop {
		t.Fatalf("last op = %s", stop.Op)
	}
	wantLine := f.Nodes[0].Body.End.Line - 1
	if stop.Pos.Line != wantLine || stop.Pos.Character != 0 {
		t.Fatalf("stop position = %v, want line %d char 0", stop.Pos, wantLine)
	}

	// The same position must be reachable through the debug record.
	pos, ok := r.DebugInfo[0].PositionFor(len(n.Instructions) - 1)
	if !ok || pos.Line != wantLine {
		t.Fatalf("debug position = %v, %v", pos, ok)
	}
}

func TestRawTextNodeCompilesToStringReference(t *testing.T) {
	f := testkit.NewFile("poem.skein",
		testkit.RawNode("Poem", "Roses are red."))
	r := compileOne(t, &Job{Files: []syntax.File{f}})

	n, ok := r.Program.Node("Poem")
	if !ok {
		t.Fatalf("nodes = %v", r.Program.NodeNames())
	}
	if n.SourceTextStringID != "line:Poem" {
		t.Fatalf("source text id = %q", n.SourceTextStringID)
	}
	if len(n.Instructions) != 0 {
		t.Fatalf("raw text node carries %d instructions", len(n.Instructions))
	}
}

func TestEmptyNodeCompilesToEntryLabelAndStop(t *testing.T) {
	f := testkit.NewFile("a.skein", testkit.NewNode("Start"))
	r := compileOne(t, &Job{Files: []syntax.File{f}})

	n, ok := r.Program.Node("Start")
	if !ok {
		t.Fatalf("nodes = %v", r.Program.NodeNames())
	}
	if len(n.Instructions) != 1 || n.Instructions[0].Op != program.OpStop {
		t.Fatalf("instructions = %v", flatten(n))
	}
	// The entry label marks the position of the next instruction, so
	// it points at the stop.
	if len(n.Labels) != 1 {
		t.Fatalf("labels = %v", n.Labels)
	}
	for name, offset := range n.Labels {
		if offset != 0 {
			t.Fatalf("label %s at %d, want 0", name, offset)
		}
	}
}

func TestLabelNumberingRestartsPerFile(t *testing.T) {
	job := &Job{Files: []syntax.File{
		testkit.NewFile("a.skein", testkit.NewNode("First")),
		testkit.NewFile("b.skein", testkit.NewNode("Second")),
	}}
	r := compileOne(t, job)

	for _, name := range []string{"First", "Second"} {
		n, ok := r.Program.Node(name)
		if !ok {
			t.Fatalf("node %q missing; have %v", name, r.Program.NodeNames())
		}
		if _, ok := n.Labels["L0"]; !ok {
			t.Fatalf("node %q labels = %v, want entry label L0", name, n.Labels)
		}
	}
}

func TestRepeatedTitleHeaderLastWins(t *testing.T) {
	n := testkit.HeaderNode([]syntax.Header{
		{Key: syntax.HeaderTitle, Value: "Draft"},
		{Key: syntax.HeaderTitle, Value: "Start"},
	}, testkit.Line("Hello.", "line:hi"))
	f := testkit.NewFile("a.skein", n)
	r := compileOne(t, &Job{Files: []syntax.File{f}})

	if _, ok := r.Program.Node("Start"); !ok {
		t.Fatalf("nodes = %v, want Start", r.Program.NodeNames())
	}
	if _, ok := r.Program.Node("Draft"); ok {
		t.Fatalf("node compiled under an overridden title")
	}
}
