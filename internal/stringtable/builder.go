package stringtable

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Duplicate records an id registered twice. The first entry stays in
// the table.
type Duplicate struct {
	ID    string
	File  string
	Node  string
	Line  int
	First Entry
}

// Builder accumulates entries across a whole compilation job.
type Builder struct {
	table Table
	dups  []Duplicate
	// implicit collects generated ids per node, in generation order.
	implicit map[string][]string
	counters map[string]int
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		table:    make(Table),
		implicit: make(map[string][]string),
		counters: make(map[string]int),
	}
}

// AddExplicit registers an entry under its authored id. Duplicate ids
// are recorded and the first registration wins.
func (b *Builder) AddExplicit(id string, e Entry) {
	e.Text = norm.NFC.String(e.Text)
	if first, exists := b.table[id]; exists {
		b.dups = append(b.dups, Duplicate{
			ID: id, File: e.File, Node: e.Node, Line: e.Line, First: first,
		})
		return
	}
	b.table[id] = e
}

// AddImplicit registers an entry under a generated id and returns the
// id. Generated ids are deterministic: the same file, node and
// registration order always produce the same id. An authored id shaped
// like a generated one is skipped over; probing is ordered, so
// determinism holds.
func (b *Builder) AddImplicit(e Entry) string {
	key := e.File + "\x00" + e.Node
	var id string
	for {
		n := b.counters[key]
		b.counters[key]++
		id = fmt.Sprintf("%s%s-%s-%d", Prefix, fileStem(e.File), e.Node, n)
		if _, exists := b.table[id]; !exists {
			break
		}
	}
	e.Implicit = true
	e.Text = norm.NFC.String(e.Text)
	b.table[id] = e
	b.implicit[e.Node] = append(b.implicit[e.Node], id)
	return id
}

// AddRawText registers a raw-text node's whole body under the
// node-derived id.
func (b *Builder) AddRawText(e Entry) string {
	id := IDForNode(e.Node)
	b.AddExplicit(id, e)
	return id
}

// Table returns the built table. The builder must not be used after.
func (b *Builder) Table() Table { return b.table }

// Duplicates returns recorded id collisions in registration order.
func (b *Builder) Duplicates() []Duplicate { return b.dups }

// ImplicitNodes returns the nodes that needed generated ids, sorted,
// with their id counts.
func (b *Builder) ImplicitNodes() []ImplicitNode {
	out := make([]ImplicitNode, 0, len(b.implicit))
	for node, ids := range b.implicit {
		out = append(out, ImplicitNode{Node: node, IDs: ids})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Node < out[j].Node })
	return out
}

// ImplicitNode lists the generated ids of one node.
type ImplicitNode struct {
	Node string
	IDs  []string
}

func fileStem(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
