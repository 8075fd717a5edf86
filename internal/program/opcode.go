// Package program defines the compiled form of a dialogue script: a
// set of named nodes, each a flat instruction sequence addressed
// through a label table, plus the debug records tying instructions
// back to script positions. The dialogue runtime executes this form;
// the compiler only produces it.
package program

// Opcode numbers the virtual machine instructions. The stack holds
// dialogue values; instructions address labels within their own node
// only.
type Opcode uint8

const (
	// OpJumpTo jumps to a label in the current node.
	// Operands: label (string).
	OpJumpTo Opcode = iota

	// OpJump pops a label name off the stack and jumps to it.
	OpJump

	// OpRunLine shows a dialogue line after popping its substitution
	// values. Operands: line id (string), substitution count (float).
	OpRunLine

	// OpRunCommand dispatches a command to the host after popping its
	// substitution values. Operands: command text (string),
	// substitution count (float).
	OpRunCommand

	// OpAddOption queues an option to show later. When the option has
	// a condition, its result sits on top of the stack and is popped.
	// Operands: line id (string), destination label (string),
	// substitution count (float), has condition (bool).
	OpAddOption

	// OpShowOptions shows the queued options and pushes the chosen
	// option's destination label.
	OpShowOptions

	// OpPushString pushes a string constant. Operands: value.
	OpPushString

	// OpPushFloat pushes a number constant. Operands: value.
	OpPushFloat

	// OpPushBool pushes a boolean constant. Operands: value.
	OpPushBool

	// OpJumpIfFalse pops the top of the stack and jumps to a label
	// when the value is false. Operands: label (string).
	OpJumpIfFalse

	// OpPop discards the top of the stack.
	OpPop

	// OpCallFunc calls a library function. The stack holds the
	// argument count on top of the arguments; the result is pushed.
	// Operands: function name (string).
	OpCallFunc

	// OpPushVariable pushes the value stored under a variable name.
	// Operands: variable name (string).
	OpPushVariable

	// OpStoreVariable stores the top of the stack under a variable
	// name without popping it. Operands: variable name (string).
	OpStoreVariable

	// OpStop ends dialogue execution.
	OpStop

	// OpRunNode pops a node name from the stack and starts running
	// that node.
	OpRunNode
)

var opcodeNames = [...]string{
	OpJumpTo:        "JumpTo",
	OpJump:          "Jump",
	OpRunLine:       "RunLine",
	OpRunCommand:    "RunCommand",
	OpAddOption:     "AddOption",
	OpShowOptions:   "ShowOptions",
	OpPushString:    "PushString",
	OpPushFloat:     "PushFloat",
	OpPushBool:      "PushBool",
	OpJumpIfFalse:   "JumpIfFalse",
	OpPop:           "Pop",
	OpCallFunc:      "CallFunc",
	OpPushVariable:  "PushVariable",
	OpStoreVariable: "StoreVariable",
	OpStop:          "Stop",
	OpRunNode:       "RunNode",
}

func (o Opcode) String() string {
	if int(o) < len(opcodeNames) {
		return opcodeNames[o]
	}
	return "Unknown"
}
