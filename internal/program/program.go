package program

import (
	"fmt"
	"sort"

	"skein/internal/source"
	"skein/internal/value"
)

// Instruction is one executable step. Pos is the script position the
// instruction was generated from, kept for runtime error reporting.
type Instruction struct {
	Op       Opcode
	Operands []value.Value
	Pos      source.Position
}

// Header is a node header carried through into the compiled form.
type Header struct {
	Key   string
	Value string
}

// Node is one compiled dialogue node.
type Node struct {
	Name    string
	Headers []Header
	Tags    []string

	Instructions []Instruction
	// Labels maps label names to instruction offsets in this node.
	Labels map[string]int32

	// SourceTextStringID is set for raw-text nodes, whose body is
	// stored in the string table instead of being compiled. Such
	// nodes carry no instructions.
	SourceTextStringID string
}

// AddLabel registers a label at an instruction offset.
func (n *Node) AddLabel(name string, offset int32) {
	if n.Labels == nil {
		n.Labels = make(map[string]int32)
	}
	n.Labels[name] = offset
}

// ValidateLabels checks that every label lands inside the node's
// instruction range. Violations mean the compiler itself is broken,
// so callers treat a non-nil error as fatal.
func (n *Node) ValidateLabels() error {
	for name, offset := range n.Labels {
		if offset < 0 || int(offset) >= len(n.Instructions) {
			return fmt.Errorf("node %q: label %q points at %d of %d instruction(s)",
				n.Name, name, offset, len(n.Instructions))
		}
	}
	return nil
}

// Program is a compiled set of nodes.
type Program struct {
	Nodes map[string]*Node
}

// New returns an empty program.
func New() *Program {
	return &Program{Nodes: make(map[string]*Node)}
}

// AddNode inserts a node unless its name is already taken. The first
// node under a name wins; it reports whether the insert happened.
func (p *Program) AddNode(n *Node) bool {
	if _, exists := p.Nodes[n.Name]; exists {
		return false
	}
	p.Nodes[n.Name] = n
	return true
}

// Node looks up a node by name.
func (p *Program) Node(name string) (*Node, bool) {
	n, ok := p.Nodes[name]
	return n, ok
}

// NodeNames returns the node names in sorted order.
func (p *Program) NodeNames() []string {
	names := make([]string, 0, len(p.Nodes))
	for name := range p.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DebugInfo records, for one compiled node, where each instruction
// came from. One record exists per node codegen visited, even when the
// node itself was discarded.
type DebugInfo struct {
	FileName string
	NodeName string
	// LinePositions maps instruction offsets to script positions.
	LinePositions map[int]source.Position
}

// PositionFor returns the script position of an instruction offset.
func (d *DebugInfo) PositionFor(offset int) (source.Position, bool) {
	p, ok := d.LinePositions[offset]
	return p, ok
}
