package sessions

import "errors"

var (
	// ErrSessionActive is returned when the owner already has a session in flight.
	ErrSessionActive = errors.New("session already active")

	// ErrNoSession is returned when the owner has no active session.
	ErrNoSession = errors.New("no active session")

	// ErrCapacity is returned when the registry is at capacity.
	ErrCapacity = errors.New("session capacity reached")
)
