package workerpool

import "errors"

// Sentinel errors for pool lifecycle.
var (
	ErrNotStarted = errors.New("worker pool not started")
	ErrStopped    = errors.New("worker pool stopped")
)
