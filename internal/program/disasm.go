package program

import (
	"fmt"
	"sort"
	"strings"
)

// Disassemble renders the whole program in a stable, readable form.
// Nodes appear in name order; labels are listed by offset.
func Disassemble(p *Program) string {
	var sb strings.Builder
	for i, name := range p.NodeNames() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		DisassembleNode(&sb, p.Nodes[name])
	}
	return sb.String()
}

// DisassembleNode renders one node.
func DisassembleNode(sb *strings.Builder, n *Node) {
	fmt.Fprintf(sb, "node %s\n", n.Name)
	if len(n.Tags) > 0 {
		fmt.Fprintf(sb, "  tags: %s\n", strings.Join(n.Tags, " "))
	}
	if n.SourceTextStringID != "" {
		fmt.Fprintf(sb, "  raw text: %s\n", n.SourceTextStringID)
		return
	}
	if len(n.Labels) > 0 {
		fmt.Fprintf(sb, "  labels: %s\n", formatLabels(n.Labels))
	}
	for i, ins := range n.Instructions {
		if len(ins.Operands) == 0 {
			fmt.Fprintf(sb, "  %04d  %s\n", i, ins.Op)
			continue
		}
		fmt.Fprintf(sb, "  %04d  %-13s ", i, ins.Op)
		for j, op := range ins.Operands {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(op.String())
		}
		sb.WriteByte('\n')
	}
}

func formatLabels(labels map[string]int32) string {
	type entry struct {
		name   string
		offset int32
	}
	entries := make([]entry, 0, len(labels))
	for name, offset := range labels {
		entries = append(entries, entry{name, offset})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].offset != entries[j].offset {
			return entries[i].offset < entries[j].offset
		}
		return entries[i].name < entries[j].name
	})
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s=%d", e.name, e.offset)
	}
	return strings.Join(parts, ", ")
}
