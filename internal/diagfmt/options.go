// Package diagfmt renders compiler diagnostics for humans and for
// machines. It never mutates the diagnostics it is given.
package diagfmt

import (
	"os"
	"path/filepath"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps paths exactly as the compiler recorded them.
	PathModeAuto PathMode = iota
	// PathModeAbsolute resolves paths against the working directory.
	PathModeAbsolute
	// PathModeRelative rewrites paths relative to the working directory.
	PathModeRelative
	// PathModeBasename strips everything but the file name.
	PathModeBasename
)

// PrettyOpts configures human-readable diagnostic output.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
	// Sources maps a file name to its script lines. Diagnostics in
	// files present here get a source excerpt with a caret under the
	// span; everything else renders location-only.
	Sources map[string][]string
}

// JSONOpts configures machine-readable diagnostic output.
type JSONOpts struct {
	PathMode PathMode
	// Max caps how many diagnostics are emitted; 0 keeps all.
	Max          int
	IncludeNotes bool
}

func formatPath(file string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(file); err == nil {
			return abs
		}
	case PathModeRelative:
		if wd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(wd, file); err == nil {
				return rel
			}
		}
	case PathModeBasename:
		return filepath.Base(file)
	}
	return file
}
