package compiler

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"skein/internal/library"
	"skein/internal/program"
	"skein/internal/source"
	"skein/internal/stringtable"
	"skein/internal/syntax"
	"skein/internal/value"
)

// listener builds the Program one node at a time. It mirrors the
// shape of a parse walk: enterNode resets the per-node accumulator,
// exitHeader folds each header into it, enterBody lowers statements,
// exitBody seals the node with tracking code and a stop, and exitNode
// decides whether the node makes it into the Program. One listener
// serves a single file; its label counter spans that file's nodes, so
// generated label names never repeat within a file.
type listener struct {
	*state

	prog       *program.Program
	debugInfos []program.DebugInfo

	file *syntax.File

	// Per-node accumulator, reset by enterNode.
	node    *program.Node
	debug   program.DebugInfo
	rawText bool

	labelCount int
}

func newListener(st *state, prog *program.Program) *listener {
	return &listener{
		state: st,
		prog:  prog,
	}
}

// registerLabel reserves a fresh label name. Commentary is a readable
// suffix and has no semantic weight.
func (l *listener) registerLabel(commentary string) string {
	label := fmt.Sprintf("L%d%s", l.labelCount, commentary)
	l.labelCount++
	return label
}

// addLabel binds a label name to the next instruction offset.
func (l *listener) addLabel(name string) {
	offset, err := safecast.Conv[int32](len(l.node.Instructions))
	if err != nil {
		panic(fmt.Errorf("node %q: instruction offset: %w", l.node.Name, err))
	}
	l.node.AddLabel(name, offset)
}

// emit appends an instruction with no source position.
func (l *listener) emit(op program.Opcode, operands ...value.Value) {
	l.node.Instructions = append(l.node.Instructions, program.Instruction{
		Op:       op,
		Operands: operands,
	})
}

// emitAt appends an instruction and records where it came from.
func (l *listener) emitAt(op program.Opcode, pos source.Position, operands ...value.Value) {
	l.debug.LinePositions[len(l.node.Instructions)] = pos
	l.node.Instructions = append(l.node.Instructions, program.Instruction{
		Op:       op,
		Operands: operands,
		Pos:      pos,
	})
}

func (l *listener) enterNode() {
	l.node = &program.Node{}
	l.debug = program.DebugInfo{LinePositions: make(map[int]source.Position)}
	l.rawText = false
}

// exitHeader folds one header into the node. Each title header
// overwrites the name, so on the malformed repeated-title case the
// last one wins, matching how the rest of the pipeline reads titles;
// tags headers split on whitespace and may flag the node as raw text.
// Every header is carried through into the compiled node verbatim.
func (l *listener) exitHeader(h *syntax.Header) {
	switch h.Key {
	case syntax.HeaderTitle:
		l.node.Name = h.Value
	case syntax.HeaderTags:
		tags := strings.Fields(h.Value)
		l.node.Tags = append(l.node.Tags, tags...)
		for _, t := range tags {
			if t == syntax.TagRawText {
				l.rawText = true
			}
		}
	}
	l.node.Headers = append(l.node.Headers, program.Header{Key: h.Key, Value: h.Value})
}

// enterBody lowers the node's statements. Raw-text nodes compile to
// no instructions at all; their body lives in the string table and
// the node only points at it. Nodes without a title are discarded at
// exitNode, so their bodies are not worth lowering either.
func (l *listener) enterBody(b *syntax.Body) {
	if l.node.Name == "" {
		return
	}
	if l.rawText {
		l.node.SourceTextStringID = stringtable.IDForNode(l.node.Name)
		return
	}

	l.addLabel(l.registerLabel(""))

	trackVar := ""
	if _, ok := l.tracking[l.node.Name]; ok {
		trackVar = library.VisitedVariableName(l.node.Name)
	}
	v := &codegen{listener: l, trackVar: trackVar}
	for i := range b.Statements {
		v.visitStmt(&b.Statements[i])
	}
}

// exitBody seals a compiled body: the visit counter goes up right
// before the stop so that falling off the end of the node counts as a
// completed visit. Jumps emit their own increment, and a jump never
// reaches this point, so the count stays exact. The stop carries the
// closing token's position, one line up, clamped at zero.
func (l *listener) exitBody(b *syntax.Body) {
	if l.node.Name == "" || l.rawText {
		return
	}

	if _, ok := l.tracking[l.node.Name]; ok {
		l.emitTracking(library.VisitedVariableName(l.node.Name))
	}

	line := b.End.Line - 1
	if line < 0 {
		line = 0
	}
	l.emitAt(program.OpStop, source.Position{Line: line, Character: 0})
}

// exitNode files the finished node. The first definition of a name
// wins; collisions were diagnosed by the declarations pass and are
// skipped quietly here, as are nodes that never got a title. A debug
// record is appended for every node visited, discarded ones included.
func (l *listener) exitNode() {
	if l.node.Name != "" {
		l.prog.AddNode(l.node)
	}
	l.debug.FileName = l.file.Name
	l.debug.NodeName = l.node.Name
	l.debugInfos = append(l.debugInfos, l.debug)
	l.node = nil
}

// emitTracking bumps a node's visit counter by one.
func (l *listener) emitTracking(trackVar string) {
	l.emit(program.OpPushVariable, value.NewString(trackVar))
	l.emit(program.OpPushFloat, value.NewNumber(1))
	l.emit(program.OpPushFloat, value.NewNumber(2))
	l.emit(program.OpCallFunc, value.NewString(addNumbersFunc))
	l.emit(program.OpStoreVariable, value.NewString(trackVar))
	l.emit(program.OpPop)
}
