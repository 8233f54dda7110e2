// Package comparison implements the bounded pairwise insertion flow: a
// binary-search-style sequence of head-to-head choices that locates a
// 1-based insertion position for a new item against an existing ranked
// list, with full LIFO undo.
//
// A Session is a finite state machine driven one step per user choice.
// It never touches the ranked list itself; materializing the resolved
// position is the caller's responsibility, which is why cancellation can
// never leave positions partially shifted.
package comparison

import "fmt"

// DefaultMaxComparisons bounds the user interaction cost of one placement.
// When the budget runs out before the search converges the item is placed
// at the current low boundary, trading precision for a hard cap on steps.
const DefaultMaxComparisons = 10

// State identifies where a session is in its lifecycle.
type State int

const (
	// StateAwaitingChoice means the session has a current opponent and is
	// waiting for the caller to apply a choice.
	StateAwaitingChoice State = iota
	// StateResolved means the insertion position has been determined.
	StateResolved
	// StateCancelled means the attempt was discarded.
	StateCancelled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateAwaitingChoice:
		return "awaiting_choice"
	case StateResolved:
		return "resolved"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Choice is the outcome of one head-to-head comparison.
type Choice int

const (
	// ChoiceNew means the item being placed was preferred.
	ChoiceNew Choice = iota
	// ChoiceOpponent means the existing ranked item was preferred.
	ChoiceOpponent
)

// bounds is the transient binary-search state of one session. Snapshots of
// it form the undo stack.
type bounds struct {
	low   int
	high  int
	count int
}

// Session drives a bounded sequence of pairwise comparisons for one item.
// A session belongs to a single caller; concurrent use is not supported.
type Session struct {
	itemID    string
	opponents []string // ranked item ids, most preferred first
	max       int

	cur     bounds
	history []bounds
	state   State
	final   int // resolved 1-based position
}

// Option applies a configuration option to a Session.
type Option func(*Session)

// WithMaxComparisons overrides the comparison budget.
func WithMaxComparisons(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.max = n
		}
	}
}

// New starts a session placing itemID against ranked (most preferred
// first). A session over an empty list resolves immediately at position 1
// with zero comparisons.
func New(itemID string, ranked []string, opts ...Option) *Session {
	opponents := make([]string, len(ranked))
	copy(opponents, ranked)

	s := &Session{
		itemID:    itemID,
		opponents: opponents,
		max:       DefaultMaxComparisons,
		cur:       bounds{low: 0, high: len(ranked) - 1},
		state:     StateAwaitingChoice,
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(opponents) == 0 {
		s.state = StateResolved
		s.final = 1
	}
	return s
}

// ItemID returns the item being placed.
func (s *Session) ItemID() string { return s.itemID }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Comparisons returns how many choices have been applied.
func (s *Session) Comparisons() int { return s.cur.count }

// CanUndo reports whether at least one choice can be undone.
func (s *Session) CanUndo() bool { return len(s.history) > 0 }

// Opponent returns the item id to compare against next.
func (s *Session) Opponent() (string, error) {
	if s.state != StateAwaitingChoice {
		return "", fmt.Errorf("%w: state %s", ErrNotAwaitingChoice, s.state)
	}
	mid := (s.cur.low + s.cur.high) / 2
	return s.opponents[mid], nil
}

// Apply records the outcome of the current comparison and advances the
// search. The pre-choice bounds are pushed onto the undo stack first. When
// the search converges, or the comparison budget is exhausted, the session
// resolves at position low+1.
func (s *Session) Apply(c Choice) error {
	if s.state != StateAwaitingChoice {
		return fmt.Errorf("%w: state %s", ErrNotAwaitingChoice, s.state)
	}

	s.history = append(s.history, s.cur)

	mid := (s.cur.low + s.cur.high) / 2
	switch c {
	case ChoiceNew:
		s.cur.high = mid - 1
	case ChoiceOpponent:
		s.cur.low = mid + 1
	default:
		s.history = s.history[:len(s.history)-1]
		return fmt.Errorf("%w: %d", ErrUnknownChoice, c)
	}
	s.cur.count++

	if s.cur.low > s.cur.high || s.cur.count >= s.max {
		s.state = StateResolved
		s.final = s.cur.low + 1
	}
	return nil
}

// Undo pops the most recent choice, restoring the pre-choice bounds so the
// same comparison is asked again. Undo also reopens a resolved session.
func (s *Session) Undo() error {
	if s.state == StateCancelled {
		return fmt.Errorf("%w: state %s", ErrNotAwaitingChoice, s.state)
	}
	if len(s.history) == 0 {
		return ErrNoHistory
	}
	s.cur = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.state = StateAwaitingChoice
	s.final = 0
	return nil
}

// Cancel discards the attempt. The ranked list is never touched.
func (s *Session) Cancel() {
	if s.state == StateAwaitingChoice {
		s.state = StateCancelled
	}
}

// Position returns the resolved 1-based insertion position.
func (s *Session) Position() (int, error) {
	if s.state != StateResolved {
		return 0, fmt.Errorf("%w: state %s", ErrNotResolved, s.state)
	}
	return s.final, nil
}
