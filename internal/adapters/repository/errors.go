package repository

import "errors"

// Sentinel kinds for ranking store errors.
var (
	ErrNotFound      = errors.New("item not found")
	ErrDuplicateItem = errors.New("item already in library")
	ErrInvalidShift  = errors.New("shift would break position contiguity")
)
