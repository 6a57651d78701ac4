package assign

import "errors"

var (
	// ErrEmptyCandidatePool marks a run with nothing to assign. Rank and
	// Reallocate return an empty list instead; callers that treat an empty
	// week as invalid can report this.
	ErrEmptyCandidatePool = errors.New("empty candidate pool")
	// ErrBijection is returned by Verify when points are not exactly 1..K.
	ErrBijection = errors.New("confidence points are not a bijection onto 1..K")
)
