// Package stringtable builds the localization table for compiled
// scripts: every player-visible line keyed by a stable id. Explicit
// ids come from #line: tags written by authors; lines without one get
// deterministic generated ids that are flagged so localization tooling
// can refuse them.
package stringtable

import (
	"fmt"
	"sort"
	"strings"
)

// Prefix starts every line id, explicit or generated.
const Prefix = "line:"

// IsIDTag reports whether a line tag names the line's id.
func IsIDTag(tag string) bool {
	return strings.HasPrefix(tag, Prefix)
}

// IDFromTags pulls the explicit line id out of a tag list. The first
// id tag wins. The id keeps its prefix.
func IDFromTags(tags []string) (string, bool) {
	for _, t := range tags {
		if IsIDTag(t) {
			return t, true
		}
	}
	return "", false
}

// StripIDTag returns tags without the id tag.
func StripIDTag(tags []string) []string {
	var out []string
	for _, t := range tags {
		if !IsIDTag(t) {
			out = append(out, t)
		}
	}
	return out
}

// IDForNode derives the id a raw-text node's whole body is stored
// under.
func IDForNode(node string) string {
	return Prefix + node
}

// Entry is one localizable string.
type Entry struct {
	// Text is the line's text, NFC-normalized by the builder.
	Text string
	// File and Node locate the line; Line is its zero-based line
	// number in the script.
	File string
	Node string
	Line int
	// Tags are the line's hashtags with the id tag removed.
	Tags []string
	// Implicit marks entries whose id was generated rather than
	// authored. Implicit ids are not stable across edits.
	Implicit bool
}

// Table maps line ids to their entries.
type Table map[string]Entry

// ContainsImplicit reports whether any entry has a generated id.
func (t Table) ContainsImplicit() bool {
	for _, e := range t {
		if e.Implicit {
			return true
		}
	}
	return false
}

// SortedIDs returns ids ordered by file, line and id, the order every
// export uses.
func (t Table) SortedIDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := t[ids[i]], t[ids[j]]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return ids[i] < ids[j]
	})
	return ids
}

// CheckComplete returns an *IncompleteLineIDsError when the table
// holds implicit entries. Localization exports call it before writing
// anything.
func (t Table) CheckComplete() error {
	byNode := make(map[string][]string)
	for id, e := range t {
		if e.Implicit {
			key := e.Node
			if key == "" {
				key = e.File
			}
			byNode[key] = append(byNode[key], id)
		}
	}
	if len(byNode) == 0 {
		return nil
	}
	for _, ids := range byNode {
		sort.Strings(ids)
	}
	return &IncompleteLineIDsError{Nodes: byNode}
}

// IncompleteLineIDsError reports nodes whose lines are missing
// authored ids, keyed by node name.
type IncompleteLineIDsError struct {
	Nodes map[string][]string
}

func (e *IncompleteLineIDsError) Error() string {
	names := make([]string, 0, len(e.Nodes))
	total := 0
	for name, ids := range e.Nodes {
		names = append(names, name)
		total += len(ids)
	}
	sort.Strings(names)
	return fmt.Sprintf("%d line(s) without #line: tags in node(s) %s",
		total, strings.Join(names, ", "))
}
