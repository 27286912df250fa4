package team

import "errors"

// Sentinel kinds for aggregation errors.
var (
	ErrInvalidPlayer = errors.New("invalid player in roster")
)
