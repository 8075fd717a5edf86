package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"skein/internal/diag"
	"skein/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue, color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
	gutterColor  = color.New(color.FgHiBlack)
)

// Pretty renders diagnostics one after another:
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//
// followed by the script line with a caret under the span when the
// file's text is available, then notes indented underneath. Lines and
// columns print 1-based.
func Pretty(w io.Writer, items []diag.Diagnostic, opts PrettyOpts) {
	for _, d := range items {
		fmt.Fprintf(w, "%s:%s: %s %s: %s\n",
			formatPath(d.File, opts.PathMode),
			d.Primary.Start,
			paint(severityColor(d.Severity), d.Severity.String(), opts.Color),
			d.Code.ID(),
			d.Message)
		writeExcerpt(w, d.File, d.Primary, opts)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n",
				paint(noteColor, "note", opts.Color), n.Span.Start, n.Msg)
		}
	}
}

// writeExcerpt prints the offending script line with a caret run
// under the span. Multi-line spans underline to the end of the first
// line only.
func writeExcerpt(w io.Writer, file string, span source.Span, opts PrettyOpts) {
	lines, ok := opts.Sources[file]
	if !ok || span.Start.Line < 0 || span.Start.Line >= len(lines) {
		return
	}
	text := lines[span.Start.Line]
	runes := []rune(text)

	start := span.Start.Character
	if start > len(runes) {
		start = len(runes)
	}
	end := len(runes)
	if span.End.Line == span.Start.Line && span.End.Character < end {
		end = span.End.Character
	}

	gutter := fmt.Sprintf("%5d | ", span.Start.Line+1)
	fmt.Fprintf(w, "%s%s\n", paint(gutterColor, gutter, opts.Color), text)

	indent := runewidth.StringWidth(string(runes[:start]))
	width := runewidth.StringWidth(string(runes[start:end]))
	if width < 1 {
		width = 1
	}
	caret := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s%s%s\n",
		paint(gutterColor, "      | ", opts.Color),
		strings.Repeat(" ", indent),
		paint(caretColor, caret, opts.Color))
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func paint(c *color.Color, s string, enabled bool) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}
