package syntax

import (
	"testing"

	"skein/internal/diag"
	"skein/internal/source"
)

func titled(name string) []Header {
	return []Header{{Key: HeaderTitle, Value: name}}
}

func TestValidateCleanFile(t *testing.T) {
	f := File{
		Name: "ok.skein",
		Nodes: []Node{{
			Headers: titled("Start"),
			Body: Body{Statements: []Stmt{
				{Kind: StmtLine, Text: "hi", Tags: []string{"line:a"}},
			}},
		}},
	}
	if got := Validate(&f); len(got) != 0 {
		t.Fatalf("diagnostics on clean file: %v", got)
	}
}

func TestValidateEmptyHeaderKey(t *testing.T) {
	f := File{
		Name: "bad.skein",
		Nodes: []Node{{
			Headers: []Header{{Key: "", Value: "x"}},
		}},
	}
	got := Validate(&f)
	if len(got) != 1 || got[0].Code != diag.TreEmptyHeaderKey {
		t.Fatalf("diagnostics = %v", got)
	}
}

func TestValidateRawTextNeedsText(t *testing.T) {
	f := File{
		Name: "raw.skein",
		Nodes: []Node{{
			Headers: []Header{
				{Key: HeaderTitle, Value: "Poem"},
				{Key: HeaderTags, Value: TagRawText},
			},
		}},
	}
	got := Validate(&f)
	if len(got) != 1 || got[0].Code != diag.TreMissingBody {
		t.Fatalf("diagnostics = %v", got)
	}
}

func TestValidateElseMustBeLast(t *testing.T) {
	cond := &Expr{Kind: ExprBool, Bool: true}
	f := File{
		Name: "if.skein",
		Nodes: []Node{{
			Headers: titled("Start"),
			Body: Body{Statements: []Stmt{{
				Kind: StmtIf,
				Clauses: []IfClause{
					{Condition: nil, Body: nil},
					{Condition: cond, Body: nil},
				},
			}}},
		}},
	}
	got := Validate(&f)
	if len(got) != 1 || got[0].Code != diag.TreInvalidStatement {
		t.Fatalf("diagnostics = %v", got)
	}
}

func TestValidateWalksNestedBodies(t *testing.T) {
	f := File{
		Name: "nest.skein",
		Nodes: []Node{{
			Headers: titled("Start"),
			Body: Body{Statements: []Stmt{{
				Kind: StmtOptions,
				Options: []Option{{
					Text: "Go north",
					Body: []Stmt{{
						Kind: StmtSet,
						Span: source.At(source.Position{Line: 4}),
						// missing variable, operator and value
					}},
				}},
			}}},
		}},
	}
	got := Validate(&f)
	if len(got) != 3 {
		t.Fatalf("diagnostics = %d, want 3: %v", len(got), got)
	}
	for _, d := range got {
		if d.Code != diag.TreInvalidStatement {
			t.Fatalf("unexpected code %s", d.Code.ID())
		}
	}
}

func TestValidateBinaryOperandAndOperator(t *testing.T) {
	f := File{
		Name: "expr.skein",
		Nodes: []Node{{
			Headers: titled("Start"),
			Body: Body{Statements: []Stmt{{
				Kind:     StmtSet,
				Variable: "$x",
				Assign:   AssignSet,
				Value: &Expr{
					Kind: ExprBinary,
					Op:   OpNot, // not a binary operator
					Left: &Expr{Kind: ExprNumber, Number: 1},
					// right operand missing
				},
			}}},
		}},
	}
	got := Validate(&f)
	if len(got) != 2 {
		t.Fatalf("diagnostics = %d, want 2: %v", len(got), got)
	}
}
