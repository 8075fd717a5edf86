// Package syntax models the parsed dialogue scripts the compiler
// consumes. The front end (an external parser) serializes one File per
// script as JSON; this package decodes and validates that contract.
// Nothing here reads dialogue text directly.
package syntax

import (
	"strings"

	"skein/internal/source"
)

// Header keys with reserved meaning.
const (
	HeaderTitle = "title"
	HeaderTags  = "tags"
)

// Node tags with reserved meaning.
const (
	// TagRawText marks a node whose body is kept as literal text
	// instead of being compiled.
	TagRawText = "rawText"
	// TagTracking forces visit tracking for the node.
	TagTracking = "tracking"
)

// File is one parsed dialogue script.
type File struct {
	// Name identifies the script in diagnostics and debug info,
	// usually the source file path.
	Name string `json:"name"`
	// Tags are file-level hashtags.
	Tags  []string `json:"tags,omitempty"`
	Nodes []Node   `json:"nodes"`
}

// Node is one dialogue node: a header block followed by a body.
type Node struct {
	Headers []Header `json:"headers"`
	Body    Body     `json:"body"`
}

// Header is a key/value pair from a node's header block. A header
// without a value decodes with Value set to the empty string.
type Header struct {
	Key   string      `json:"key"`
	Value string      `json:"value,omitempty"`
	Span  source.Span `json:"span"`
}

// Body holds a node's statements. End is the position of the token
// that closed the body.
type Body struct {
	Statements []Stmt `json:"statements,omitempty"`
	// RawText preserves the literal body for raw-text nodes.
	RawText string          `json:"rawText,omitempty"`
	Start   source.Position `json:"start"`
	End     source.Position `json:"end"`
}

// Title returns the node's title header, if any. On the malformed
// repeated-title case the last header wins, matching code generation.
func (n *Node) Title() (string, bool) {
	title, ok := "", false
	for _, h := range n.Headers {
		if h.Key == HeaderTitle {
			title, ok = h.Value, true
		}
	}
	return title, ok
}

// HeaderValue returns the value of the first header with the key.
func (n *Node) HeaderValue(key string) (string, bool) {
	for _, h := range n.Headers {
		if h.Key == key {
			return h.Value, true
		}
	}
	return "", false
}

// NodeTags splits the node's tags header on whitespace.
func (n *Node) NodeTags() []string {
	v, ok := n.HeaderValue(HeaderTags)
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

// IsRawText reports whether the node's tags include TagRawText.
func (n *Node) IsRawText() bool {
	for _, t := range n.NodeTags() {
		if t == TagRawText {
			return true
		}
	}
	return false
}

// Span covers the node from its first header through the body's
// closing token.
func (n *Node) Span() source.Span {
	s := source.Between(n.Body.Start, n.Body.End)
	for _, h := range n.Headers {
		s = s.Cover(h.Span)
	}
	return s
}
