package valuation

import "errors"

// ErrInvalidInput marks a record the engine refuses to value. Callers test
// for it with errors.Is; the wrapped message names the offending field.
var ErrInvalidInput = errors.New("invalid input")
