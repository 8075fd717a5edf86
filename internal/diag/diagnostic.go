package diag

import "skein/internal/source"

// Note attaches a secondary location or remark to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single finding produced by the pipeline. File names
// the script the finding belongs to; Primary is the span inside it.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	File     string
	Primary  source.Span
	Notes    []Note
}

// IsError reports whether the diagnostic blocks program emission.
func (d Diagnostic) IsError() bool { return d.Severity == SevError }
