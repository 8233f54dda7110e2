package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrNotFriends is returned when a taste match or prediction is
	// requested against a user outside the owner's friend graph.
	ErrNotFriends = errors.New("users are not friends")

	// ErrInsufficientRanked is returned when the owner has ranked too
	// few items for prediction to be meaningful.
	ErrInsufficientRanked = errors.New("too few ranked items")

	// ErrNoBatch is returned when no batch job exists for the given id.
	ErrNoBatch = errors.New("batch job not found")

	// ErrQueueFull is returned when the prediction queue refuses a job.
	ErrQueueFull = errors.New("prediction queue full")
)
