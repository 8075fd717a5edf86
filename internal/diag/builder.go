package diag

import "skein/internal/source"

// New builds a diagnostic with the given severity.
func New(sev Severity, code Code, file string, span source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		File:     file,
		Primary:  span,
	}
}

// NewError builds an error diagnostic.
func NewError(code Code, file string, span source.Span, msg string) Diagnostic {
	return New(SevError, code, file, span, msg)
}

// NewWarning builds a warning diagnostic.
func NewWarning(code Code, file string, span source.Span, msg string) Diagnostic {
	return New(SevWarning, code, file, span, msg)
}

// NewInfo builds an informational diagnostic.
func NewInfo(code Code, file string, span source.Span, msg string) Diagnostic {
	return New(SevInfo, code, file, span, msg)
}

// WithNote returns a copy of the diagnostic with an extra note attached.
func (d Diagnostic) WithNote(span source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: span, Msg: msg})
	return d
}
