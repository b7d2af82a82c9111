package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SnapshotCache provides Redis-based caching for dashboard snapshots. All
// methods are safe to call on a nil cache, in which case they do nothing,
// keeping Redis optional at runtime.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	if client == nil {
		return nil
	}
	return &SnapshotCache{client: client, ttl: ttl}
}

func (c *SnapshotCache) key(userID int64) string {
	return fmt.Sprintf("account:snapshot:%d", userID)
}

// Get returns the cached snapshot, or nil on a miss.
func (c *SnapshotCache) Get(ctx context.Context, userID int64) (*Snapshot, error) {
	if c == nil {
		return nil, nil
	}

	b, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Set stores a snapshot under its user id key.
func (c *SnapshotCache) Set(ctx context.Context, snap *Snapshot) error {
	if c == nil {
		return nil
	}

	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(snap.UserID), b, c.ttl).Err()
}

// Invalidate drops the cached snapshot after a balance mutation.
func (c *SnapshotCache) Invalidate(ctx context.Context, userID int64) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, c.key(userID)).Err()
}
