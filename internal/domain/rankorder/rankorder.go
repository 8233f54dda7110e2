// Package rankorder maintains the contiguous 1..N position sequence for one
// owner's ranked list and exposes the shift-range primitives that keep it
// contiguous under insert, remove, and move.
//
// An Order is a value: operations return a new Order and never mutate the
// receiver, which makes every operation all-or-nothing. Persisting the result
// is the caller's responsibility.
package rankorder

import (
	"fmt"

	"github.com/mirzakhani/gamerank/internal/domain/model"
)

// Order holds item ids in rank order. The item at index i occupies
// position i+1; position 1 is most preferred.
type Order struct {
	items []string
}

// New builds an Order from item ids already in rank order.
func New(itemIDs ...string) Order {
	items := make([]string, len(itemIDs))
	copy(items, itemIDs)
	return Order{items: items}
}

// FromRanked builds an Order from store records. The records must already be
// sorted by position; FromRanked does not re-sort.
func FromRanked(ranked []model.RankedItem) Order {
	items := make([]string, len(ranked))
	for i, r := range ranked {
		items[i] = r.ItemID
	}
	return Order{items: items}
}

// Len returns the number of ranked items.
func (o Order) Len() int { return len(o.items) }

// Items returns the item ids in rank order. The slice is a copy.
func (o Order) Items() []string {
	items := make([]string, len(o.items))
	copy(items, o.items)
	return items
}

// ItemAt returns the item id at a 1-based position.
func (o Order) ItemAt(position int) (string, error) {
	if position < 1 || position > len(o.items) {
		return "", fmt.Errorf("%w: position %d with %d items", ErrInvalidPosition, position, len(o.items))
	}
	return o.items[position-1], nil
}

// PositionOf returns the 1-based position of an item, or ErrNotRanked.
func (o Order) PositionOf(itemID string) (int, error) {
	for i, id := range o.items {
		if id == itemID {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrNotRanked, itemID)
}

// InsertAt places a new item at position p. Every existing item at
// position >= p shifts up by one. Precondition: 1 <= p <= N+1.
func (o Order) InsertAt(p int, itemID string) (Order, error) {
	if p < 1 || p > len(o.items)+1 {
		return Order{}, fmt.Errorf("%w: insert at %d with %d items", ErrInvalidPosition, p, len(o.items))
	}
	if _, err := o.PositionOf(itemID); err == nil {
		return Order{}, fmt.Errorf("%w: %s", ErrAlreadyRanked, itemID)
	}
	items := make([]string, 0, len(o.items)+1)
	items = append(items, o.items[:p-1]...)
	items = append(items, itemID)
	items = append(items, o.items[p-1:]...)
	return Order{items: items}, nil
}

// RemoveAt detaches the item at position p. Every item at position > p
// shifts down by one. Precondition: 1 <= p <= N.
func (o Order) RemoveAt(p int) (Order, error) {
	if p < 1 || p > len(o.items) {
		return Order{}, fmt.Errorf("%w: remove at %d with %d items", ErrInvalidPosition, p, len(o.items))
	}
	items := make([]string, 0, len(o.items)-1)
	items = append(items, o.items[:p-1]...)
	items = append(items, o.items[p:]...)
	return Order{items: items}, nil
}

// MoveTo relocates the item at oldPos to newPos. Items between the two
// positions shift by one toward the vacated slot. MoveTo(p, p) is a no-op.
func (o Order) MoveTo(oldPos, newPos int) (Order, error) {
	n := len(o.items)
	if oldPos < 1 || oldPos > n {
		return Order{}, fmt.Errorf("%w: move from %d with %d items", ErrInvalidPosition, oldPos, n)
	}
	if newPos < 1 || newPos > n {
		return Order{}, fmt.Errorf("%w: move to %d with %d items", ErrInvalidPosition, newPos, n)
	}
	if oldPos == newPos {
		return Order{items: o.Items()}, nil
	}
	moved := o.items[oldPos-1]
	without, err := o.RemoveAt(oldPos)
	if err != nil {
		return Order{}, err
	}
	return without.InsertAt(newPos, moved)
}

// Positions returns the item -> position map.
func (o Order) Positions() map[string]int {
	pos := make(map[string]int, len(o.items))
	for i, id := range o.items {
		pos[id] = i + 1
	}
	return pos
}

// Shifts computes the position updates needed to turn before into after:
// one entry per item whose position changed, plus entries for items that
// only exist in after. The result is ordered by new position so a store can
// apply it deterministically.
func Shifts(before, after Order) []model.PositionShift {
	old := before.Positions()
	var shifts []model.PositionShift
	for i, id := range after.items {
		newPos := i + 1
		if oldPos, ok := old[id]; ok && oldPos == newPos {
			continue
		}
		shifts = append(shifts, model.PositionShift{ItemID: id, NewPosition: newPos})
	}
	return shifts
}
