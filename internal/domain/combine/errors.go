package combine

import "errors"

var (
	// ErrUnknownMode is returned for a combination mode name that does not exist.
	ErrUnknownMode = errors.New("unknown combination mode")
	// ErrNoSources is returned when there is nothing to combine.
	ErrNoSources = errors.New("no analysis sources")
)
