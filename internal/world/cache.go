// ABOUTME: Single in-memory world snapshot with two update sources
// ABOUTME: REST fetches and push events both replace it wholesale

package world

import (
	"context"

	"github.com/bloodscript/companion-cli/internal/client"
)

// FetchFunc fetches the current world snapshot from the backend.
type FetchFunc func(ctx context.Context) (*client.WorldState, error)

// Cache holds the one current WorldState. The contract is "last full
// snapshot wins": every update replaces the whole value, and no field-level
// merge is ever performed. No ordering token exists between a REST response
// and a push event arriving close together; both sources are the same
// backend of record, so transiently stale data is acceptable.
//
// The cache is owned by the bubbletea event loop and is not safe for
// concurrent use.
type Cache struct {
	snapshot *client.WorldState
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{}
}

// Load fetches a fresh snapshot. On success the cache is replaced
// wholesale; on failure the previous snapshot stays untouched and the
// error is returned for the view layer to route.
func (c *Cache) Load(ctx context.Context, fetch FetchFunc) error {
	snapshot, err := fetch(ctx)
	if err != nil {
		return err
	}
	c.snapshot = snapshot
	return nil
}

// ApplyPush replaces the cache with a push-delivered snapshot,
// unconditionally.
func (c *Cache) ApplyPush(snapshot *client.WorldState) {
	c.snapshot = snapshot
}

// Snapshot returns the current world, or nil before the first load.
func (c *Cache) Snapshot() *client.WorldState {
	return c.snapshot
}

// Loaded reports whether a snapshot has been observed.
func (c *Cache) Loaded() bool {
	return c.snapshot != nil
}

// Clear drops the snapshot. Called together with session teardown so a
// stale world is never rendered against the wrong identity.
func (c *Cache) Clear() {
	c.snapshot = nil
}
