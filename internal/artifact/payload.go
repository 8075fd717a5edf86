package artifact

import (
	"fmt"

	"skein/internal/program"
	"skein/internal/source"
	"skein/internal/stringtable"
	"skein/internal/types"
	"skein/internal/value"
)

// SchemaVersion invalidates older payloads when the format changes.
const SchemaVersion uint16 = 1

// Payload is the cached form of one compile's outputs. Diagnostics
// are never cached: callers store clean results only.
type Payload struct {
	Schema uint16
	// Source repeats the input digest for inspection; the cache key
	// already encodes it.
	Source Digest

	Nodes        []NodePayload
	Strings      map[string]stringtable.Entry
	FileTags     map[string][]string
	ImplicitTags bool
	Debug        []program.DebugInfo
}

// NodePayload flattens one compiled node. Instructions are recoded
// because operand values do not serialize directly.
type NodePayload struct {
	Name               string
	Headers            []program.Header
	Tags               []string
	Labels             map[string]int32
	SourceTextStringID string
	Code               []InstructionPayload
}

// InstructionPayload is one instruction in wire form.
type InstructionPayload struct {
	Op       uint8
	Pos      source.Position
	Operands []OperandPayload
}

// OperandPayload mirrors the value union field by field.
type OperandPayload struct {
	Kind uint8
	Num  float32
	Str  string
	Bool bool
}

// NewPayload snapshots compile outputs for caching.
func NewPayload(src Digest, prog *program.Program, table stringtable.Table, debug []program.DebugInfo, fileTags map[string][]string) *Payload {
	p := &Payload{
		Schema:       SchemaVersion,
		Source:       src,
		Strings:      table,
		FileTags:     fileTags,
		ImplicitTags: table.ContainsImplicit(),
		Debug:        debug,
	}
	if prog == nil {
		return p
	}
	for _, name := range prog.NodeNames() {
		n, _ := prog.Node(name)
		p.Nodes = append(p.Nodes, snapshotNode(n))
	}
	return p
}

func snapshotNode(n *program.Node) NodePayload {
	np := NodePayload{
		Name:               n.Name,
		Headers:            n.Headers,
		Tags:               n.Tags,
		Labels:             n.Labels,
		SourceTextStringID: n.SourceTextStringID,
	}
	np.Code = make([]InstructionPayload, len(n.Instructions))
	for i, ins := range n.Instructions {
		ip := InstructionPayload{Op: uint8(ins.Op), Pos: ins.Pos}
		for _, op := range ins.Operands {
			ip.Operands = append(ip.Operands, snapshotOperand(op))
		}
		np.Code[i] = ip
	}
	return np
}

func snapshotOperand(v value.Value) OperandPayload {
	op := OperandPayload{Kind: uint8(v.Kind())}
	// Kind-matched conversions are exact and cannot fail.
	switch v.Kind() {
	case types.KindNumber:
		op.Num, _ = v.AsNumber()
	case types.KindString:
		op.Str, _ = v.AsString()
	case types.KindBoolean:
		op.Bool, _ = v.AsBool()
	}
	return op
}

// Program rebuilds the cached program. Corrupt payloads surface as
// errors rather than as malformed programs.
func (p *Payload) Program() (*program.Program, error) {
	prog := program.New()
	for _, np := range p.Nodes {
		n := &program.Node{
			Name:               np.Name,
			Headers:            np.Headers,
			Tags:               np.Tags,
			Labels:             np.Labels,
			SourceTextStringID: np.SourceTextStringID,
		}
		n.Instructions = make([]program.Instruction, len(np.Code))
		for i, ip := range np.Code {
			if ip.Op > uint8(program.OpRunNode) {
				return nil, fmt.Errorf("node %q, instruction %d: opcode %d out of range", np.Name, i, ip.Op)
			}
			ins := program.Instruction{Op: program.Opcode(ip.Op), Pos: ip.Pos}
			for _, op := range ip.Operands {
				v, err := restoreOperand(op)
				if err != nil {
					return nil, fmt.Errorf("node %q, instruction %d: %w", np.Name, i, err)
				}
				ins.Operands = append(ins.Operands, v)
			}
			n.Instructions[i] = ins
		}
		if !prog.AddNode(n) {
			return nil, fmt.Errorf("node %q cached twice", np.Name)
		}
	}
	return prog, nil
}

// Table rebuilds the cached string table.
func (p *Payload) Table() stringtable.Table {
	return stringtable.Table(p.Strings)
}

func restoreOperand(op OperandPayload) (value.Value, error) {
	switch types.Kind(op.Kind) {
	case types.KindNumber:
		return value.NewNumber(op.Num), nil
	case types.KindString:
		return value.NewString(op.Str), nil
	case types.KindBoolean:
		return value.NewBool(op.Bool), nil
	default:
		return value.Value{}, fmt.Errorf("operand kind %d is not a value", op.Kind)
	}
}
