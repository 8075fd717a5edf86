// Package observ collects timing data for compiler passes. It has no
// opinion about presentation; the CLI renders summaries and the JSON
// report is stable for tooling.
package observ

import (
	"fmt"
	"time"
)

// Pass records the duration and metadata of one pipeline pass.
type Pass struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of the passes of one compilation.
type Timer struct {
	passes []Pass
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{passes: make([]Pass, 0, 8)} }

// Begin starts a new pass and returns its index.
func (t *Timer) Begin(name string) int {
	t.passes = append(t.passes, Pass{Name: name, Start: time.Now()})
	return len(t.passes) - 1
}

// End finishes a pass by its index. The note lands in reports verbatim.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.passes) {
		return
	}
	p := &t.passes[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Track runs fn as a named pass, using its return value as the note.
func (t *Timer) Track(name string, fn func() string) {
	idx := t.Begin(name)
	t.End(idx, fn())
}

// Summary returns a human-readable string summarizing all passes.
func (t *Timer) Summary() string {
	report := t.Report()
	out := "timings:\n"
	for _, p := range report.Passes {
		out += fmt.Sprintf("  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			out += "  // " + p.Note
		}
		out += "\n"
	}
	out += fmt.Sprintf("  %-20s %7.2f ms\n", "total", report.TotalMS)
	return out
}

// PassReport is the serialized form of one pass.
type PassReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates every pass and the total duration in milliseconds.
type Report struct {
	TotalMS float64      `json:"total_ms"`
	Passes  []PassReport `json:"passes"`
}

// Report builds the serializable aggregate of all tracked passes.
func (t *Timer) Report() Report {
	if len(t.passes) == 0 {
		return Report{}
	}
	report := Report{
		Passes: make([]PassReport, len(t.passes)),
	}
	var total time.Duration
	for i, pass := range t.passes {
		total += pass.Dur
		report.Passes[i] = PassReport{
			Name:       pass.Name,
			DurationMS: durationToMillis(pass.Dur),
			Note:       pass.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
