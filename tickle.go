package tickle

import "fmt"

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input characters. A span
// denotes a start position and the position just behind the end.
//
// Scanners attach a span to every token, and the interpreter extends the
// spans of a statement's tokens to locate errors in script files.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns a span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
