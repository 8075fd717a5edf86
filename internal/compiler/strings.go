package compiler

import (
	"fmt"

	"skein/internal/diag"
	"skein/internal/source"
	"skein/internal/stringtable"
	"skein/internal/syntax"
)

// buildStringTable assigns a line id to every piece of player-visible
// text: line statements, options and raw-text bodies. Authored #line:
// tags win; everything else gets a deterministic generated id. The id
// assigned to each statement is recorded so code generation emits the
// same ids without re-deriving them.
func buildStringTable(st *state, r Result) Result {
	c := &stringCollector{
		state:   st,
		builder: stringtable.NewBuilder(),
		seen:    make(map[string]lineSite),
	}

	for fi := range st.job.Files {
		f := &st.job.Files[fi]
		for ni := range f.Nodes {
			c.node(f, &f.Nodes[ni])
		}
	}

	for _, in := range c.builder.ImplicitNodes() {
		site := st.nodes[in.Node]
		st.bag.Add(diag.NewInfo(diag.StrImplicitLineID, site.file, site.span,
			fmt.Sprintf("node %q has %d line(s) without #line: ids; generated ids are not stable across edits",
				in.Node, len(in.IDs))))
	}

	r.StringTable = c.builder.Table()
	r.ContainsImplicitStringTags = r.StringTable.ContainsImplicit()
	return r
}

type lineSite struct {
	file string
	span source.Span
}

type stringCollector struct {
	*state
	builder *stringtable.Builder
	// seen maps every registered id to its first use, authored or
	// generated, so a later authored collision can point back at it.
	seen map[string]lineSite
}

// node collects the strings of one node. Nodes without a title are
// skipped: generated ids need a node name, and the declarations pass
// has already diagnosed the miss. Duplicate definitions are collected
// like any other node; code generation discards them the same way.
func (c *stringCollector) node(f *syntax.File, n *syntax.Node) {
	title, ok := n.Title()
	if !ok || title == "" {
		return
	}

	if n.IsRawText() {
		id := c.builder.AddRawText(stringtable.Entry{
			Text: n.Body.RawText,
			File: f.Name,
			Node: title,
			Line: n.Body.Start.Line,
		})
		c.markSeen(id, f.Name, n.Span())
		return
	}

	forEachStmt(n.Body.Statements, func(s *syntax.Stmt) {
		switch s.Kind {
		case syntax.StmtLine:
			c.stmtIDs[s] = c.line(f.Name, title, s.Text, s.Tags, s.Span)
		case syntax.StmtOptions:
			for oi := range s.Options {
				o := &s.Options[oi]
				c.optIDs[o] = c.line(f.Name, title, o.Text, o.Tags, o.Span)
			}
		}
	})
}

// line registers one player-visible line and returns its id.
func (c *stringCollector) line(file, node, text string, tags []string, span source.Span) string {
	e := stringtable.Entry{
		Text: text,
		File: file,
		Node: node,
		Line: span.Start.Line,
		Tags: stringtable.StripIDTag(tags),
	}

	if id, ok := stringtable.IDFromTags(tags); ok {
		c.builder.AddExplicit(id, e)
		c.markSeen(id, file, span)
		return id
	}

	id := c.builder.AddImplicit(e)
	c.markSeen(id, file, span)
	return id
}

func (c *stringCollector) markSeen(id, file string, span source.Span) {
	first, dup := c.seen[id]
	if !dup {
		c.seen[id] = lineSite{file: file, span: span}
		return
	}
	c.bag.Add(diag.NewError(diag.StrDuplicateLineID, file, span,
		fmt.Sprintf("line id %q is used more than once", id)).
		WithNote(first.span, fmt.Sprintf("first used in %s", first.file)))
}
