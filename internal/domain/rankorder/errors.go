package rankorder

import "errors"

// Sentinel kinds for rank order errors.
var (
	ErrInvalidPosition = errors.New("position out of range")
	ErrNotRanked       = errors.New("item not ranked")
	ErrAlreadyRanked   = errors.New("item already ranked")
)
