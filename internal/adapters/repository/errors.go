package repository

import "errors"

// Sentinel kinds for league errors.
var (
	ErrNotFound         = errors.New("team not found")
	ErrInvalidLimit     = errors.New("invalid rankings limit")
	ErrUnknownDirection = errors.New("unknown transfer direction")
	ErrInvalidTransfer  = errors.New("invalid transfer")
)
