// Package memory provides the process-lifetime in-memory implementations of
// the catalog repository and bill ledger. Both live from process start to
// process exit; there is no durability.
package memory

import (
	"context"
	"sync"

	"github.com/xenking/smart-retail/internal/domain/catalog"
)

// Compile-time check ensuring Catalog satisfies the repository interface.
var _ catalog.Repository = (*Catalog)(nil)

// Catalog is a mutex-guarded in-memory item store. An insertion-order index
// keeps List output stable across calls.
type Catalog struct {
	mu    sync.RWMutex
	items map[string]*catalog.Item
	order []string
}

// NewCatalog creates an empty catalog store.
func NewCatalog() *Catalog {
	return &Catalog{
		items: make(map[string]*catalog.Item),
	}
}

// List returns a snapshot of every item in insertion order.
func (c *Catalog) List(_ context.Context) ([]catalog.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]catalog.Item, 0, len(c.order))
	for _, sku := range c.order {
		out = append(out, *c.items[sku])
	}
	return out, nil
}

// Get returns a copy of the item with the given SKU.
func (c *Catalog) Get(_ context.Context, sku string) (*catalog.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[sku]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	snapshot := *item
	return &snapshot, nil
}

// Create inserts a new item. The stored record is a copy of the argument.
func (c *Catalog) Create(_ context.Context, item *catalog.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[item.SKU]; ok {
		return catalog.ErrDuplicateSKU
	}
	stored := *item
	c.items[item.SKU] = &stored
	c.order = append(c.order, item.SKU)
	return nil
}

// Deduct decreases stock by qty and returns a post-deduction snapshot.
// Stock sufficiency is the caller's responsibility.
func (c *Catalog) Deduct(_ context.Context, sku string, qty int) (*catalog.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[sku]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	item.Stock -= qty
	snapshot := *item
	return &snapshot, nil
}
