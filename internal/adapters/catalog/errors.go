package catalog

import "errors"

// ErrNotFound is returned when the requested item is not catalogued.
var ErrNotFound = errors.New("item not in catalog")
