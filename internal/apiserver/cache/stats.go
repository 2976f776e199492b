// Package cache provides a Redis-backed cache for dashboard
// aggregates. The dashboard is the most frequently polled endpoint and
// its stats are computed from several COUNT queries, so results are
// kept in Redis for a short TTL and invalidated on any write that
// changes the counts.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ubuntu-bounty/crm/internal/apiserver/database"
	"github.com/ubuntu-bounty/crm/internal/common/config"
)

const statsKey = "dashboard:stats"

// ErrMiss is returned when the requested entry is not cached.
var ErrMiss = redis.Nil

// StatsCache caches dashboard statistics in Redis.
type StatsCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStatsCache connects to Redis using the given configuration and
// returns a stats cache. The connection is verified with a ping.
func NewStatsCache(cfg *config.CacheConfig) (*StatsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StatsCache{
		client: client,
		prefix: cfg.Prefix,
		ttl:    ttl,
	}, nil
}

func (c *StatsCache) key() string {
	return c.prefix + statsKey
}

// Get returns the cached dashboard stats, or ErrMiss when absent.
func (c *StatsCache) Get(ctx context.Context) (*database.DashboardStats, error) {
	data, err := c.client.Get(ctx, c.key()).Bytes()
	if err != nil {
		return nil, err
	}

	var stats database.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Set stores the dashboard stats for the configured TTL.
func (c *StatsCache) Set(ctx context.Context, stats *database.DashboardStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(), data, c.ttl).Err()
}

// Invalidate drops the cached stats so the next read recomputes them.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key()).Err()
}

// Close releases the Redis connection.
func (c *StatsCache) Close() error {
	return c.client.Close()
}
