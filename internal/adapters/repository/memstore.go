// Package repository defines the ranking store interface and errors.
package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mirzakhani/gamerank/internal/domain/model"
	"github.com/mirzakhani/gamerank/pkg/metrics"
)

// In-memory Store implementation.
//
// State is sharded per owner: the outer map is guarded by a read-write
// mutex, each owner's lists by their own mutex. Mutations validate against
// the contiguity invariant before touching anything, so a failed call
// leaves the owner's list exactly as it was.

// ownerState holds one owner's library under its own lock.
type ownerState struct {
	mu       sync.Mutex
	ranked   []model.RankedItem // sorted by Position
	unranked []model.UnrankedItem
}

// MemStore implements Store with in-process state.
type MemStore struct {
	mu     sync.RWMutex
	owners map[string]*ownerState

	now func() time.Time
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		owners: make(map[string]*ownerState),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// owner returns the owner's state, creating it on first touch.
func (s *MemStore) owner(ownerID string) *ownerState {
	s.mu.RLock()
	st, ok := s.owners[ownerID]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok = s.owners[ownerID]; ok {
		return st
	}
	st = &ownerState{}
	s.owners[ownerID] = st
	return st
}

// RankedList returns the owner's ranked items ordered by position.
func (s *MemStore) RankedList(_ context.Context, ownerID string) ([]model.RankedItem, error) {
	st := s.owner(ownerID)
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]model.RankedItem, len(st.ranked))
	copy(out, st.ranked)
	return out, nil
}

// UnrankedList returns the owner's backlog ordered by creation time.
func (s *MemStore) UnrankedList(_ context.Context, ownerID string) ([]model.UnrankedItem, error) {
	st := s.owner(ownerID)
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]model.UnrankedItem, len(st.unranked))
	copy(out, st.unranked)
	sort.SliceStable(out, func(i, j int) bool { return out[i].AddedAt.Before(out[j].AddedAt) })
	return out, nil
}

// AddUnranked adds an item to the owner's library without a position.
func (s *MemStore) AddUnranked(_ context.Context, ownerID, itemID string) (model.UnrankedItem, error) {
	st := s.owner(ownerID)
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, u := range st.unranked {
		if u.ItemID == itemID {
			return model.UnrankedItem{}, ErrDuplicateItem
		}
	}
	for _, r := range st.ranked {
		if r.ItemID == itemID {
			return model.UnrankedItem{}, ErrDuplicateItem
		}
	}

	item := model.UnrankedItem{
		ID:      uuid.New().String(),
		OwnerID: ownerID,
		ItemID:  itemID,
		AddedAt: s.now(),
	}
	st.unranked = append(st.unranked, item)
	metrics.UpdateBacklogSize(ownerID, len(st.unranked))
	return item, nil
}

// Place transitions an unranked item to ranked at position, shifting every
// item at or below position down by one slot.
func (s *MemStore) Place(_ context.Context, ownerID, itemID string, position int) error {
	st := s.owner(ownerID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if position < 1 || position > len(st.ranked)+1 {
		return ErrInvalidShift
	}

	idx := -1
	for i, u := range st.unranked {
		if u.ItemID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	backlog := st.unranked[idx]

	// Validation done; mutate.
	st.unranked = append(st.unranked[:idx], st.unranked[idx+1:]...)
	for i := range st.ranked {
		if st.ranked[i].Position >= position {
			st.ranked[i].Position++
		}
	}
	st.ranked = append(st.ranked, model.RankedItem{
		ID:       backlog.ID,
		OwnerID:  ownerID,
		ItemID:   itemID,
		Position: position,
		AddedAt:  backlog.AddedAt,
	})
	sortRanked(st.ranked)

	metrics.RecordPlacement()
	metrics.UpdateRankedSize(ownerID, len(st.ranked))
	metrics.UpdateBacklogSize(ownerID, len(st.unranked))
	return nil
}

// Unrank transitions a ranked item back to the backlog and compacts the
// positions below it.
func (s *MemStore) Unrank(_ context.Context, ownerID, itemID string) error {
	st := s.owner(ownerID)
	st.mu.Lock()
	defer st.mu.Unlock()

	idx := -1
	for i, r := range st.ranked {
		if r.ItemID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	removed := st.ranked[idx]

	st.ranked = append(st.ranked[:idx], st.ranked[idx+1:]...)
	for i := range st.ranked {
		if st.ranked[i].Position > removed.Position {
			st.ranked[i].Position--
		}
	}
	st.unranked = append(st.unranked, model.UnrankedItem{
		ID:      removed.ID,
		OwnerID: ownerID,
		ItemID:  itemID,
		AddedAt: s.now(),
	})

	metrics.UpdateRankedSize(ownerID, len(st.ranked))
	metrics.UpdateBacklogSize(ownerID, len(st.unranked))
	return nil
}

// ApplyShifts atomically applies a batch of position updates.
func (s *MemStore) ApplyShifts(_ context.Context, ownerID string, shifts []model.PositionShift) error {
	st := s.owner(ownerID)
	st.mu.Lock()
	defer st.mu.Unlock()

	// Stage the new positions and verify the result is a permutation of
	// 1..N before committing anything.
	staged := make(map[string]int, len(st.ranked))
	for _, r := range st.ranked {
		staged[r.ItemID] = r.Position
	}
	for _, sh := range shifts {
		if _, ok := staged[sh.ItemID]; !ok {
			return ErrNotFound
		}
		staged[sh.ItemID] = sh.NewPosition
	}

	seen := make(map[int]bool, len(staged))
	for _, pos := range staged {
		if pos < 1 || pos > len(staged) || seen[pos] {
			return ErrInvalidShift
		}
		seen[pos] = true
	}

	for i := range st.ranked {
		st.ranked[i].Position = staged[st.ranked[i].ItemID]
	}
	sortRanked(st.ranked)
	return nil
}

// Count returns the number of ranked items for the owner.
func (s *MemStore) Count(_ context.Context, ownerID string) int {
	st := s.owner(ownerID)
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.ranked)
}

func sortRanked(items []model.RankedItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].Position < items[j].Position })
}
