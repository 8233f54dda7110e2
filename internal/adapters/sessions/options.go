package sessions

import "time"

// Option applies a configuration option to the in-memory registry.
type Option func(*inMemoryRegistry)

// WithCapacity sets the maximum number of concurrent sessions.
// Zero or negative means unbounded.
func WithCapacity(capacity int) Option {
	return func(r *inMemoryRegistry) {
		r.capacity = capacity
	}
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(r *inMemoryRegistry) {
		r.now = now
	}
}
