// Package catalog provides game metadata lookup for the prediction
// and taste-match paths. The in-memory implementation is loaded at
// startup and read-only afterwards.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/mirzakhani/gamerank/internal/domain/model"
)

// Catalog resolves item metadata by item id.
type Catalog interface {
	// Lookup returns the metadata for an item. It returns an error
	// wrapping ErrNotFound when the item is unknown.
	Lookup(ctx context.Context, itemID string) (model.ItemMeta, error)

	// LookupAll resolves a batch of item ids, skipping unknown ones.
	LookupAll(ctx context.Context, itemIDs []string) []model.ItemMeta

	// Size reports the number of catalogued items.
	Size(ctx context.Context) int
}

// MemCatalog is a concurrency-safe in-memory Catalog.
type MemCatalog struct {
	mu    sync.RWMutex
	items map[string]model.ItemMeta
}

// NewMemCatalog creates an empty catalog, optionally seeded with metadata.
func NewMemCatalog(seed ...model.ItemMeta) *MemCatalog {
	c := &MemCatalog{items: make(map[string]model.ItemMeta, len(seed))}
	for _, m := range seed {
		c.items[m.ItemID] = m
	}
	return c
}

// Put inserts or replaces an item's metadata.
func (c *MemCatalog) Put(meta model.ItemMeta) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[meta.ItemID] = meta
}

// Lookup implements Catalog.
func (c *MemCatalog) Lookup(ctx context.Context, itemID string) (model.ItemMeta, error) {
	if err := ctx.Err(); err != nil {
		return model.ItemMeta{}, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	meta, ok := c.items[itemID]
	if !ok {
		return model.ItemMeta{}, fmt.Errorf("catalog lookup %q: %w", itemID, ErrNotFound)
	}
	return meta, nil
}

// LookupAll implements Catalog.
func (c *MemCatalog) LookupAll(ctx context.Context, itemIDs []string) []model.ItemMeta {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.ItemMeta, 0, len(itemIDs))
	for _, id := range itemIDs {
		if meta, ok := c.items[id]; ok {
			out = append(out, meta)
		}
	}
	return out
}

// Size implements Catalog.
func (c *MemCatalog) Size(ctx context.Context) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
