package testkit

import (
	"fmt"

	"skein/internal/program"
	"skein/internal/types"
)

// CheckProgramInvariants runs CheckNodeInvariants over every node.
func CheckProgramInvariants(p *program.Program) error {
	if p == nil {
		return fmt.Errorf("nil program")
	}
	for _, name := range p.NodeNames() {
		n, _ := p.Node(name)
		if err := CheckNodeInvariants(n); err != nil {
			return err
		}
	}
	return nil
}

// CheckNodeInvariants runs structural checks on one compiled node:
// 1) every label lands inside the instruction range
// 2) raw-text nodes carry a string id and no instructions, and only
//    raw-text nodes are instruction-free
// 3) a compiled node's final instruction is Stop
// 4) every jump and option destination names a label that exists
// 5) every CallFunc directly follows the PushFloat of its argc
// 6) operand counts and kinds match each opcode's contract
func CheckNodeInvariants(n *program.Node) error {
	if n == nil {
		return fmt.Errorf("nil node")
	}

	// 1) label range
	if err := n.ValidateLabels(); err != nil {
		return err
	}

	// 2) raw-text shape
	if n.SourceTextStringID != "" {
		if len(n.Instructions) != 0 {
			return fmt.Errorf("node %q: raw text but carries %d instruction(s)",
				n.Name, len(n.Instructions))
		}
		return nil
	}
	if len(n.Instructions) == 0 {
		return fmt.Errorf("node %q: no instructions and no source text id", n.Name)
	}

	// 3) terminal stop
	if last := n.Instructions[len(n.Instructions)-1].Op; last != program.OpStop {
		return fmt.Errorf("node %q: last instruction is %s, want Stop", n.Name, last)
	}

	for i, ins := range n.Instructions {
		// 6) operand shape
		if err := checkOperands(ins); err != nil {
			return fmt.Errorf("node %q: instruction %d: %w", n.Name, i, err)
		}

		// 4) destinations resolve
		for _, label := range destinationLabels(ins) {
			if _, ok := n.Labels[label]; !ok {
				return fmt.Errorf("node %q: instruction %d (%s) targets unknown label %q",
					n.Name, i, ins.Op, label)
			}
		}

		// 5) argc precedes every call
		if ins.Op == program.OpCallFunc {
			if i == 0 || n.Instructions[i-1].Op != program.OpPushFloat {
				return fmt.Errorf("node %q: instruction %d: CallFunc without a PushFloat argc before it",
					n.Name, i)
			}
		}
	}
	return nil
}

// destinationLabels extracts the label operands an instruction jumps
// or queues to.
func destinationLabels(ins program.Instruction) []string {
	switch ins.Op {
	case program.OpJumpTo, program.OpJumpIfFalse:
		if len(ins.Operands) == 1 {
			if s, err := ins.Operands[0].AsString(); err == nil {
				return []string{s}
			}
		}
	case program.OpAddOption:
		if len(ins.Operands) == 4 {
			if s, err := ins.Operands[1].AsString(); err == nil {
				return []string{s}
			}
		}
	}
	return nil
}

// operandShape lists the operand kinds each opcode carries.
var operandShape = map[program.Opcode][]types.Kind{
	program.OpJumpTo:        {types.KindString},
	program.OpJump:          {},
	program.OpRunLine:       {types.KindString, types.KindNumber},
	program.OpRunCommand:    {types.KindString, types.KindNumber},
	program.OpAddOption:     {types.KindString, types.KindString, types.KindNumber, types.KindBoolean},
	program.OpShowOptions:   {},
	program.OpPushString:    {types.KindString},
	program.OpPushFloat:     {types.KindNumber},
	program.OpPushBool:      {types.KindBoolean},
	program.OpJumpIfFalse:   {types.KindString},
	program.OpPop:           {},
	program.OpCallFunc:      {types.KindString},
	program.OpPushVariable:  {types.KindString},
	program.OpStoreVariable: {types.KindString},
	program.OpStop:          {},
	program.OpRunNode:       {},
}

func checkOperands(ins program.Instruction) error {
	shape, ok := operandShape[ins.Op]
	if !ok {
		return fmt.Errorf("unknown opcode %d", ins.Op)
	}
	if len(ins.Operands) != len(shape) {
		return fmt.Errorf("%s carries %d operand(s), want %d",
			ins.Op, len(ins.Operands), len(shape))
	}
	for i, want := range shape {
		if got := ins.Operands[i].Kind(); got != want {
			return fmt.Errorf("%s operand %d is %s, want %s", ins.Op, i, got, want)
		}
	}
	return nil
}
