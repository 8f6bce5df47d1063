package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/i474232898/smartpack/internal/snapshot"
)

// Cache is a concurrency-safe in-memory copy of the latest snapshot.
// It loads lazily from its Reader and is refreshed explicitly, either with
// Set after a batch run or with Invalidate to force a reload.
type Cache struct {
	mu sync.RWMutex

	reader snapshot.Reader
	snap   snapshot.Snapshot
	loaded bool

	// epoch counts replacements and invalidations of the cached contents.
	epoch uint64
}

// NewCache creates a Cache backed by reader. reader may be nil, in which case
// the cache only serves what Set stores.
func NewCache(reader snapshot.Reader) *Cache {
	return &Cache{reader: reader}
}

// Snapshot returns the cached snapshot, loading it on first use. The returned
// map is shared and must not be modified.
func (c *Cache) Snapshot(ctx context.Context) (snapshot.Snapshot, error) {
	c.mu.RLock()
	if c.loaded {
		snap := c.snap
		c.mu.RUnlock()
		return snap, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have loaded it while we waited.
	if c.loaded {
		return c.snap, nil
	}
	if c.reader == nil {
		return nil, ErrNotFound
	}

	snap, err := c.reader.Read(ctx)
	if err != nil {
		return nil, err
	}
	c.snap = snap
	c.loaded = true
	return snap, nil
}

// Entry returns the cached record for the named location.
func (c *Cache) Entry(ctx context.Context, name string) (snapshot.Entry, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return snapshot.Entry{}, err
	}

	entry, ok := snap[name]
	if !ok {
		return snapshot.Entry{}, fmt.Errorf("%w: location %q", ErrNotFound, name)
	}
	return entry, nil
}

// Names returns the cached location names, sorted.
func (c *Cache) Names(ctx context.Context) ([]string, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Names(), nil
}

// Set replaces the cached snapshot with one that was just built.
func (c *Cache) Set(snap snapshot.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snap = snap
	c.loaded = true
	c.epoch++
}

// Invalidate drops the cached snapshot; the next access reloads from the Reader.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snap = nil
	c.loaded = false
	c.epoch++
}

// Epoch reports how many times the cached contents were replaced or invalidated.
func (c *Cache) Epoch() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epoch
}
