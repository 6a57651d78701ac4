package game

import "errors"

// Sentinel kinds for game identifier errors.
var (
	ErrMalformedGameIdentifier = errors.New("malformed game identifier")
)
