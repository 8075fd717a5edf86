package source

import "fmt"

// Span is a half-open region between two positions in one file.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// At builds a zero-width span pointing at a single position.
func At(p Position) Span {
	return Span{Start: p, End: p}
}

// Between builds a span covering both positions in either order.
func Between(a, b Position) Span {
	if b.Before(a) {
		a, b = b, a
	}
	return Span{Start: a, End: b}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) String() string {
	if s.Empty() {
		return s.Start.String()
	}
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Cover widens s so that it also contains other.
func (s Span) Cover(other Span) Span {
	if other.Start.Before(s.Start) {
		s.Start = other.Start
	}
	if s.End.Before(other.End) {
		s.End = other.End
	}
	return s
}
