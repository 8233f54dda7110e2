package comparison

import "errors"

// Sentinel kinds for comparison session errors.
var (
	ErrNotAwaitingChoice = errors.New("session not awaiting a choice")
	ErrNotResolved       = errors.New("session not resolved")
	ErrNoHistory         = errors.New("nothing to undo")
	ErrUnknownChoice     = errors.New("unknown choice")
)
