// Package types contains common types used across the application
package types

// Entry represents one row of an owner's ranked list
type Entry struct {
	Position int    `json:"position"`
	ItemID   string `json:"item_id"`
	Title    string `json:"title,omitempty"`
}

// BacklogEntry represents an unranked library item
type BacklogEntry struct {
	ItemID  string `json:"item_id"`
	Title   string `json:"title,omitempty"`
	AddedAt string `json:"added_at"`
}

// Session is the externally visible state of a comparison session
type Session struct {
	OwnerID     string `json:"owner_id"`
	ItemID      string `json:"item_id"`
	State       string `json:"state"`
	Opponent    string `json:"opponent,omitempty"`
	Comparisons int    `json:"comparisons"`
	CanUndo     bool   `json:"can_undo"`
	Position    int    `json:"position,omitempty"` // final position once resolved
}

// MatchScore is the taste-match result between two users
type MatchScore struct {
	OwnerID  string  `json:"owner_id"`
	FriendID string  `json:"friend_id"`
	Score    float64 `json:"score"`
	Shared   int     `json:"shared"`
}

// FriendSignal is one friend's contribution to a prediction
type FriendSignal struct {
	FriendName string  `json:"friend_name"`
	Percentile float64 `json:"percentile"`
	TasteMatch float64 `json:"taste_match"`
	Weight     float64 `json:"weight"`
}

// Affinity names the strongest genre or tag signal behind a prediction
type Affinity struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Prediction is the externally visible prediction for one item
type Prediction struct {
	ItemID        string         `json:"item_id"`
	Available     bool           `json:"available"`
	Percentile    float64        `json:"percentile,omitempty"`
	Confidence    int            `json:"confidence,omitempty"`
	Tiers         []string       `json:"tiers,omitempty"`
	FriendSignals []FriendSignal `json:"friend_signals,omitempty"`
	TopGenre      *Affinity      `json:"top_genre,omitempty"`
	TopTag        *Affinity      `json:"top_tag,omitempty"`
}

// BatchStatus reports the latest batch prediction run for an owner
type BatchStatus struct {
	JobID       string       `json:"job_id"`
	OwnerID     string       `json:"owner_id"`
	CompletedAt string       `json:"completed_at,omitempty"`
	Items       []Prediction `json:"items"`
}
