package stringtable

import (
	"errors"
	"strings"
	"testing"
)

func TestExportCSV(t *testing.T) {
	b := NewBuilder()
	b.AddExplicit("line:hello", Entry{
		Text: "Hello, world", File: "a.skein", Node: "Start", Line: 2,
		Tags: []string{"greeting"},
	})
	b.AddExplicit("line:bye", Entry{
		Text: "Bye", File: "a.skein", Node: "Start", Line: 4,
	})

	var sb strings.Builder
	if err := ExportCSV(&sb, b.Table()); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	got := sb.String()
	want := "id,text,file,node,lineNumber,tags\n" +
		"line:hello,\"Hello, world\",a.skein,Start,3,greeting\n" +
		"line:bye,Bye,a.skein,Start,5,\n"
	if got != want {
		t.Fatalf("csv mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestExportCSVRefusesImplicit(t *testing.T) {
	b := NewBuilder()
	b.AddImplicit(Entry{Text: "untagged", File: "a.skein", Node: "Start"})

	var sb strings.Builder
	err := ExportCSV(&sb, b.Table())
	var incomplete *IncompleteLineIDsError
	if !errors.As(err, &incomplete) {
		t.Fatalf("err = %v, want IncompleteLineIDsError", err)
	}
	if sb.Len() != 0 {
		t.Fatalf("export wrote output before failing: %q", sb.String())
	}
}

func TestExportCSVUncheckedWritesImplicit(t *testing.T) {
	b := NewBuilder()
	b.AddImplicit(Entry{Text: "untagged", File: "a.skein", Node: "Start"})

	var sb strings.Builder
	if err := ExportCSVUnchecked(&sb, b.Table()); err != nil {
		t.Fatalf("ExportCSVUnchecked: %v", err)
	}
	if !strings.Contains(sb.String(), "line:intro-Start-0") && !strings.Contains(sb.String(), "untagged") {
		t.Fatalf("output missing entry: %q", sb.String())
	}
}
