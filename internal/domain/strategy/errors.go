package strategy

import "errors"

// Sentinel kinds for strategy errors.
var (
	ErrUnknownStrategy = errors.New("unknown strategy")
)
