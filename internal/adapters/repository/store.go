// Package repository defines the ranking store interface and errors.
package repository

import (
	"context"

	"github.com/mirzakhani/gamerank/internal/domain/model"
)

// Store provides read/write access to per-owner ranking state.
//
// Every mutating call is atomic per owner: either the whole operation is
// applied and the owner's positions remain a contiguous 1..N sequence, or
// nothing is applied at all. Different owners are fully independent and
// may be mutated concurrently.
type Store interface {
	// RankedList returns the owner's ranked items ordered by position.
	RankedList(ctx context.Context, ownerID string) ([]model.RankedItem, error)

	// UnrankedList returns the owner's unranked items ordered by the time
	// they were added.
	UnrankedList(ctx context.Context, ownerID string) ([]model.UnrankedItem, error)

	// AddUnranked adds an item to the owner's library without a position.
	// Returns ErrDuplicateItem if the item is already in the library.
	AddUnranked(ctx context.Context, ownerID, itemID string) (model.UnrankedItem, error)

	// Place transitions an unranked item to ranked at the given 1-based
	// position, shifting existing positions to stay contiguous.
	// Returns ErrNotFound if the item is not in the owner's backlog, or
	// ErrInvalidShift when the position falls outside [1, N+1].
	Place(ctx context.Context, ownerID, itemID string, position int) error

	// Unrank transitions a ranked item back to unranked and compacts the
	// positions below it.
	Unrank(ctx context.Context, ownerID, itemID string) error

	// ApplyShifts atomically applies a batch of position updates to the
	// owner's ranked items. The batch must describe a valid permutation:
	// after applying, positions must again be exactly 1..N. An invalid
	// batch applies nothing and returns ErrInvalidShift.
	ApplyShifts(ctx context.Context, ownerID string, shifts []model.PositionShift) error

	// Count returns the number of ranked items for the owner.
	Count(ctx context.Context, ownerID string) int
}
