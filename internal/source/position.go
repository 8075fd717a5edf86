package source

import "fmt"

// Position is a zero-based line/character location inside one source file.
// The external front end reports positions in this form; the compiler never
// re-derives them from text.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Character+1)
}

// Before reports whether p occurs strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Character < other.Character
}

// ClampLine returns p with Line lowered by n, never dropping below zero.
func (p Position) ClampLine(n int) Position {
	p.Line -= n
	if p.Line < 0 {
		p.Line = 0
	}
	return p
}
