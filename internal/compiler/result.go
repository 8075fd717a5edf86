package compiler

import (
	"skein/internal/diag"
	"skein/internal/program"
	"skein/internal/stringtable"
)

// Result is everything one compilation produced. Every pass builds a
// new Result from the previous one; no pass mutates its input.
type Result struct {
	// Program is nil for TypeCheckOnly and StringsOnly jobs, and for
	// full compilations that produced error diagnostics.
	Program *program.Program

	StringTable  stringtable.Table
	Declarations []Declaration

	// Diagnostics are sorted and deduplicated.
	Diagnostics []diag.Diagnostic

	// DebugInfo holds one record per node code generation visited,
	// discarded nodes included.
	DebugInfo []program.DebugInfo

	// FileTags maps file names to their file-level hashtags.
	FileTags map[string][]string

	// ContainsImplicitStringTags is set when any string table entry
	// carries a generated id instead of an authored one.
	ContainsImplicitStringTags bool
}

// HasErrors reports whether any diagnostic is an error.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.IsError() {
			return true
		}
	}
	return false
}

// ErrorCount counts error diagnostics.
func (r *Result) ErrorCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.IsError() {
			n++
		}
	}
	return n
}
