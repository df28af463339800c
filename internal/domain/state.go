package domain

// DebounceState holds the most recently emitted zone.
//
// The zero value reports ZoneNone from Last but has not emitted anything
// yet, so the first classification always produces a command, including a
// first ZoneNone (the base is told to stop). It is not safe for concurrent
// use; the owner serializes access.
type DebounceState struct {
	last    Zone
	emitted bool
}

// Last returns the most recently emitted zone, or ZoneNone before the first
// emission.
func (s *DebounceState) Last() Zone {
	return s.last
}

// Emitted reports whether any zone has been committed since creation or Reset.
func (s *DebounceState) Emitted() bool {
	return s.emitted
}

// Changed reports whether committing z would be a transition.
func (s *DebounceState) Changed(z Zone) bool {
	return !s.emitted || z != s.last
}

// Commit records z as the most recently emitted zone.
func (s *DebounceState) Commit(z Zone) {
	s.last = z
	s.emitted = true
}

// Reset returns the state to its initial value.
func (s *DebounceState) Reset() {
	*s = DebounceState{}
}
