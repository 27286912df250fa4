package roster

import "errors"

// ErrParse wraps every malformed CSV row.
var ErrParse = errors.New("roster parse failed")
