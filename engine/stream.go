package engine

// Stream is the remaining, not-yet-fetched portion of the input program.
// It is consumed strictly in index order and, unlike state.Processor, is
// not part of the prev/next snapshot: a rollback never un-fetches an
// instruction, it only suppresses further fetching (spec §5 Cancellation),
// so stream position only ever advances.
type Stream struct {
	lines []string
	pos   int
}

// NewStream wraps a program (a sequence of assembly lines) as a Stream.
func NewStream(lines []string) *Stream {
	return &Stream{lines: lines}
}

// Exhausted reports whether every line has been consumed.
func (s *Stream) Exhausted() bool {
	return s.pos >= len(s.lines)
}

// Consume returns the next line and advances past it. Calling Consume on
// an exhausted Stream is a caller bug (the callers in this package always
// check Exhausted first).
func (s *Stream) Consume() string {
	line := s.lines[s.pos]
	s.pos++
	return line
}
