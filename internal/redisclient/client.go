package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kittystore/internal/models"

	"github.com/go-redis/redis/v8"
)

const snapshotKey = "dashboard:snapshot"

// Client wraps Redis access for the dashboard snapshot cache.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a new Redis client and verifies connectivity.
func NewClient(addr, password string, db int, snapshotTTL time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	if snapshotTTL <= 0 {
		snapshotTTL = 30 * time.Second
	}

	return &Client{rdb: rdb, ttl: snapshotTTL}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetSnapshot returns the cached dashboard snapshot, or nil on a miss.
func (c *Client) GetSnapshot(ctx context.Context) (*models.DashboardSnapshot, error) {
	raw, err := c.rdb.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached snapshot: %w", err)
	}

	var snapshot models.DashboardSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it.
		return nil, nil
	}
	return &snapshot, nil
}

// SetSnapshot caches a snapshot under the configured TTL.
func (c *Client) SetSnapshot(ctx context.Context, snapshot *models.DashboardSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return c.rdb.Set(ctx, snapshotKey, raw, c.ttl).Err()
}

// InvalidateSnapshot drops the cached snapshot so the next dashboard request
// recomputes from the data store.
func (c *Client) InvalidateSnapshot(ctx context.Context) error {
	return c.rdb.Del(ctx, snapshotKey).Err()
}
