package stream

// TraverseState tracks the running index of a traversal and whether the
// traversal has been halted by the visiting function.
//
// The zero value is ready to use and starts at index 0.
type TraverseState struct {
	index  int
	halted bool
}

// NewTraverseState creates a traversal state starting at index start.
func NewTraverseState(start int) *TraverseState {
	return &TraverseState{index: start}
}

// Index returns the index the next visited value will receive.
func (s *TraverseState) Index() int {
	return s.index
}

// Advance returns the current index and moves on to the next one.
func (s *TraverseState) Advance() int {
	i := s.index
	s.index++
	return i
}

// Halt stops the traversal after the current value.
func (s *TraverseState) Halt() {
	s.halted = true
}

// Halted reports whether Halt has been called.
func (s *TraverseState) Halted() bool {
	return s.halted
}

// Reset re-arms a halted state and restarts counting at index start.
func (s *TraverseState) Reset(start int) {
	s.index = start
	s.halted = false
}
