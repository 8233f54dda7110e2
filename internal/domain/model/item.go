// Package model contains domain models passed between layers.
package model

import "time"

// RankedItem is one row of an owner's strictly ordered list.
// Positions are 1-based and contiguous per owner; 1 is most preferred.
type RankedItem struct {
	ID       string    // record id
	OwnerID  string    // list owner
	ItemID   string    // catalog item id
	Position int       // 1..N, unique per owner
	AddedAt  time.Time // when the item entered the library
}

// UnrankedItem is a library entry that has not been placed yet.
// Unranked items carry no position and are ordered by creation time.
type UnrankedItem struct {
	ID      string
	OwnerID string
	ItemID  string
	AddedAt time.Time
}

// PositionShift describes one item's new position after a shift
// operation. A batch of shifts is applied atomically by the store.
type PositionShift struct {
	ItemID      string
	NewPosition int
}

// ItemMeta is the catalog snapshot for one item.
type ItemMeta struct {
	ItemID      string
	CanonicalID string // unifies equivalent editions; empty when unknown
	Title       string
	CoverURL    string
	Genres      []string
	Tags        []string
	Metacritic  *float64 // critic score, nil when the catalog has none
}

// Canonical returns the identity used for cross-user matching,
// falling back to the raw item id when no canonical id is recorded.
func (m ItemMeta) Canonical() string {
	if m.CanonicalID != "" {
		return m.CanonicalID
	}
	return m.ItemID
}

// PredictionJob is a batch prediction request flowing through the queue.
type PredictionJob struct {
	JobID    string
	OwnerID  string
	ItemIDs  []string
	Enqueued time.Time
}

// ItemPrediction is one batch prediction result.
type ItemPrediction struct {
	ItemID     string
	Predicted  bool // false when no tier produced a usable signal
	Percentile float64
	Confidence int
	Tiers      []string
}

// BatchResult holds the latest completed batch for an owner.
type BatchResult struct {
	JobID       string
	OwnerID     string
	CompletedAt time.Time
	Items       []ItemPrediction
}
