package workbook

import (
	"context"
	"sync"
	"time"
)

// Cache keeps the last loaded snapshot and refreshes it only when the file's
// modification timestamp changes. It is a latency optimization for read-only
// dashboard queries, never a correctness mechanism: mutating services always
// go through the Store directly.
type Cache struct {
	store *Store

	mu      sync.Mutex
	snap    *Snapshot
	modTime time.Time
}

func NewCache(store *Store) *Cache {
	return &Cache{store: store}
}

// Get returns the cached snapshot, reloading from disk when the workbook
// changed since the last read.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	modTime, err := c.store.ModTime()
	if err != nil {
		return nil, err
	}

	if c.snap != nil && modTime.Equal(c.modTime) {
		return c.snap, nil
	}

	snap, err := c.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	c.snap = snap
	c.modTime = modTime

	return snap, nil
}

// Invalidate drops the cached snapshot so the next Get reloads.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}
