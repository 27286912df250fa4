package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	ErrFull   = errors.New("transfer queue full")
	ErrClosed = errors.New("transfer queue closed")
)
