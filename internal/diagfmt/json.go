package diagfmt

import (
	"io"

	gojson "github.com/goccy/go-json"

	"skein/internal/diag"
	"skein/internal/source"
)

// LocationJSON is a file region. Lines and columns are 1-based, the
// convention editors expect.
type LocationJSON struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
}

// NoteJSON is a secondary remark attached to a diagnostic.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON is one diagnostic in machine-readable form.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON report. Count reflects
// the emitted list; Errors counts error-severity findings before any
// cap, so consumers can decide exit status even under Max.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
}

func makeLocation(file string, span source.Span, mode PathMode) LocationJSON {
	return LocationJSON{
		File:      formatPath(file, mode),
		StartLine: span.Start.Line + 1,
		StartCol:  span.Start.Character + 1,
		EndLine:   span.End.Line + 1,
		EndCol:    span.End.Character + 1,
	}
}

// BuildDiagnosticsOutput shapes the report without serializing it.
func BuildDiagnosticsOutput(items []diag.Diagnostic, opts JSONOpts) DiagnosticsOutput {
	errors := 0
	for _, d := range items {
		if d.IsError() {
			errors++
		}
	}

	kept := items
	if opts.Max > 0 && opts.Max < len(kept) {
		kept = kept[:opts.Max]
	}

	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(kept)),
		Count:       len(kept),
		Errors:      errors,
	}
	for _, d := range kept {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.File, d.Primary, opts.PathMode),
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for i, n := range d.Notes {
				dj.Notes[i] = NoteJSON{
					Message:  n.Msg,
					Location: makeLocation(d.File, n.Span, opts.PathMode),
				}
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	return out
}

// JSON writes the report with two-space indentation and a trailing
// newline.
func JSON(w io.Writer, items []diag.Diagnostic, opts JSONOpts) error {
	enc := gojson.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(items, opts))
}
