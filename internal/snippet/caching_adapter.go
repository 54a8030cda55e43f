package snippet

import (
	"context"
	"slices"
	"sync"
)

// CachingAdapter keeps an in-memory copy of the collection in front of
// another Adapter. Writes go straight through and drop the copy; Invalidate
// drops it when the underlying storage changed behind our back.
type CachingAdapter struct {
	next Adapter

	mu         sync.RWMutex
	snapshot   []Snippet
	valid      bool
	generation uint64 // bumped on every invalidation
}

// NewCachingAdapter wraps next.
func NewCachingAdapter(next Adapter) *CachingAdapter {
	return &CachingAdapter{next: next}
}

// Invalidate forces the next read to go to the wrapped adapter.
func (c *CachingAdapter) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
	c.valid = false
	c.generation++
}

// GetAll returns a copy of the cached collection, loading it if needed.
func (c *CachingAdapter) GetAll(ctx context.Context) ([]Snippet, error) {
	c.mu.RLock()
	if c.valid {
		out := slices.Clone(c.snapshot)
		c.mu.RUnlock()
		return out, nil
	}
	gen := c.generation
	c.mu.RUnlock()

	snippets, err := c.next.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// an invalidation during the load means the result may already be stale
	if c.generation == gen {
		c.snapshot = slices.Clone(snippets)
		c.valid = true
	}
	c.mu.Unlock()

	return snippets, nil
}

// GetByID scans the cached collection.
func (c *CachingAdapter) GetByID(ctx context.Context, id string) (*Snippet, error) {
	snippets, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snippets {
		if snippets[i].ID == id {
			s := snippets[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (c *CachingAdapter) Save(ctx context.Context, s Snippet) error {
	defer c.Invalidate()
	return c.next.Save(ctx, s)
}

func (c *CachingAdapter) Delete(ctx context.Context, id string) error {
	defer c.Invalidate()
	return c.next.Delete(ctx, id)
}

func (c *CachingAdapter) Clear(ctx context.Context) error {
	defer c.Invalidate()
	return c.next.Clear(ctx)
}
