package extract

import "errors"

// Every failure returned by this package wraps exactly one of these, so
// callers can branch with errors.Is without parsing messages.
var (
	ErrMalformedNumber    = errors.New("malformed number")
	ErrMissingColumn      = errors.New("missing column")
	ErrSectionNotFound    = errors.New("section not found")
	ErrMissingField       = errors.New("missing field")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)
