// Package compiler turns parsed dialogue files into a compiled
// Program plus its string table, declarations and diagnostics. One
// Job in, one Result out; the pipeline never fails partway, it
// records problems as diagnostics and keeps going.
package compiler

import (
	"skein/internal/library"
	"skein/internal/source"
	"skein/internal/syntax"
	"skein/internal/types"
	"skein/internal/value"
)

// JobType selects how much of the pipeline runs.
type JobType uint8

const (
	// FullCompilation runs every pass and produces a Program.
	FullCompilation JobType = iota
	// TypeCheckOnly stops after declarations and the string table;
	// no code is generated.
	TypeCheckOnly
	// StringsOnly is TypeCheckOnly for localization tooling: callers
	// only read the string table off the result.
	StringsOnly
)

func (t JobType) String() string {
	switch t {
	case FullCompilation:
		return "full"
	case TypeCheckOnly:
		return "type-check"
	case StringsOnly:
		return "strings"
	default:
		return "unknown"
	}
}

// Job is one compilation request over a set of parsed files.
type Job struct {
	Files []syntax.File

	// Library holds host-registered functions. The standard library
	// is always available underneath it; nil means standard only.
	Library *library.Library

	// VariableDeclarations are declarations supplied by the host,
	// merged before any in-script declare statements.
	VariableDeclarations []Declaration

	Type JobType
}

// Declaration describes one script variable: its type and default
// value, plus where it was declared for diagnostics.
type Declaration struct {
	Name        string
	Type        types.Type
	Default     value.Value
	Description string

	// File, Node and Span locate in-script declarations. Host
	// declarations leave them empty.
	File string
	Node string
	Span source.Span
}
