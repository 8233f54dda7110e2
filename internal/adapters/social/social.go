// Package social provides the friendship graph consulted by the
// taste-match and prediction paths. Friendships are symmetric.
package social

import (
	"context"
	"sort"
	"sync"
)

// Graph answers friendship queries for an owner.
type Graph interface {
	// Friends returns the owner's friends. An owner with no recorded
	// friendships gets an empty slice, not an error.
	Friends(ctx context.Context, ownerID string) ([]string, error)

	// AreFriends reports whether the two owners are friends.
	AreFriends(ctx context.Context, a, b string) (bool, error)
}

// MemGraph is a concurrency-safe in-memory Graph.
type MemGraph struct {
	mu    sync.RWMutex
	edges map[string]map[string]bool
}

// NewMemGraph creates an empty friendship graph.
func NewMemGraph() *MemGraph {
	return &MemGraph{edges: make(map[string]map[string]bool)}
}

// AddFriendship records a symmetric friendship between two owners.
// Self-friendship is ignored.
func (g *MemGraph) AddFriendship(a, b string) {
	if a == b {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.link(a, b)
	g.link(b, a)
}

// RemoveFriendship removes the edge in both directions.
func (g *MemGraph) RemoveFriendship(a, b string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.edges[a], b)
	delete(g.edges[b], a)
}

func (g *MemGraph) link(from, to string) {
	set, ok := g.edges[from]
	if !ok {
		set = make(map[string]bool)
		g.edges[from] = set
	}
	set[to] = true
}

// Friends implements Graph. The result is sorted for stable output.
func (g *MemGraph) Friends(ctx context.Context, ownerID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	set := g.edges[ownerID]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// AreFriends implements Graph.
func (g *MemGraph) AreFriends(ctx context.Context, a, b string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges[a][b], nil
}
