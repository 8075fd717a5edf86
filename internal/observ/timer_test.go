package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("declarations")
	tm.End(idx, "3 nodes")
	tm.Track("codegen", func() string { return "" })

	report := tm.Report()
	if len(report.Passes) != 2 {
		t.Fatalf("Passes = %d, want 2", len(report.Passes))
	}
	if report.Passes[0].Name != "declarations" || report.Passes[0].Note != "3 nodes" {
		t.Fatalf("first pass = %+v", report.Passes[0])
	}
	if report.TotalMS < 0 {
		t.Fatalf("TotalMS = %v", report.TotalMS)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := NewTimer()
	tm.End(5, "ignored") // must not panic
	if len(tm.Report().Passes) != 0 {
		t.Fatalf("phantom pass recorded")
	}
}

func TestSummaryMentionsPassesAndTotal(t *testing.T) {
	tm := NewTimer()
	tm.Track("strings", func() string { return "12 entries" })
	s := tm.Summary()
	for _, want := range []string{"timings:", "strings", "12 entries", "total"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary missing %q:\n%s", want, s)
		}
	}
}
