// Package sessions tracks active comparison sessions. Each owner has
// at most one session in flight at a time.
package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mirzakhani/gamerank/internal/domain/comparison"
	"github.com/mirzakhani/gamerank/pkg/metrics"
)

// Registry stores in-flight comparison sessions keyed by owner. Sessions
// are mutable and not safe for concurrent use, so the registry never hands
// out the raw pointer: all access goes through Update, which serializes
// callers per owner.
type Registry interface {
	// Begin registers a new session for the owner and returns its token.
	// It fails with ErrSessionActive when the owner already has one, and
	// with ErrCapacity when the registry is full.
	Begin(ctx context.Context, ownerID string, s *comparison.Session) (string, error)

	// Update runs fn against the owner's active session while holding the
	// session's lock. At most one fn runs per owner at a time; fn may call
	// End for the same owner.
	Update(ctx context.Context, ownerID string, fn func(s *comparison.Session) error) error

	// End removes the owner's active session.
	End(ctx context.Context, ownerID string) error

	Size() int
}

// entry is a registered session with its token, start time, and the lock
// that serializes Update calls for its owner.
type entry struct {
	mu      sync.Mutex
	token   string
	session *comparison.Session
	started time.Time
}

// inMemoryRegistry implements Registry with a bounded map. Capacity
// zero or negative means unbounded.
type inMemoryRegistry struct {
	mu       sync.RWMutex
	active   map[string]*entry
	capacity int
	now      func() time.Time
}

// NewInMemoryRegistry creates a session registry with configuration options.
func NewInMemoryRegistry(opts ...Option) Registry {
	r := &inMemoryRegistry{
		capacity: 10000, // default capacity
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.active = make(map[string]*entry)
	return r
}

// Begin implements Registry.
func (r *inMemoryRegistry) Begin(ctx context.Context, ownerID string, s *comparison.Session) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.active[ownerID]; exists {
		return "", fmt.Errorf("owner %q: %w", ownerID, ErrSessionActive)
	}
	if r.capacity > 0 && len(r.active) >= r.capacity {
		return "", fmt.Errorf("registry full (%d sessions): %w", len(r.active), ErrCapacity)
	}

	token := uuid.New().String()
	r.active[ownerID] = &entry{token: token, session: s, started: r.now()}
	metrics.RecordSessionStarted()
	metrics.UpdateActiveSessions(len(r.active))
	return token, nil
}

// Update implements Registry.
func (r *inMemoryRegistry) Update(ctx context.Context, ownerID string, fn func(s *comparison.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	e, ok := r.active[ownerID]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("owner %q: %w", ownerID, ErrNoSession)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// The session may have ended between the map lookup and taking the
	// entry lock. Only run fn while the entry is still registered.
	r.mu.RLock()
	cur, ok := r.active[ownerID]
	r.mu.RUnlock()
	if !ok || cur != e {
		return fmt.Errorf("owner %q: %w", ownerID, ErrNoSession)
	}

	return fn(e.session)
}

// End implements Registry. Ending records the session's lifetime.
func (r *inMemoryRegistry) End(ctx context.Context, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.active[ownerID]
	if !ok {
		return fmt.Errorf("owner %q: %w", ownerID, ErrNoSession)
	}
	delete(r.active, ownerID)
	metrics.RecordSessionEnded(e.session.State().String(), r.now().Sub(e.started))
	metrics.UpdateActiveSessions(len(r.active))
	return nil
}

// Size reports the number of active sessions.
func (r *inMemoryRegistry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.active)
}
