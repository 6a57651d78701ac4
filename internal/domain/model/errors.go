package model

import "errors"

// Sentinel kinds for externally supplied analyses.
var (
	ErrInvalidConfidenceRange      = errors.New("confidence outside 1..20")
	ErrDuplicateConfidenceInSource = errors.New("conflicting confidence for the same game in one source")
	ErrInvalidSourceWeight         = errors.New("source weight outside (0,1]")
	ErrMissingSourceName           = errors.New("source name is empty")
	ErrTeamNotInGame               = errors.New("team does not play in game")
)
