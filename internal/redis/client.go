package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trogers1052/portfolio-analytics/internal/config"
)

// ErrMiss is returned by GetView when no view is cached under the key
var ErrMiss = errors.New("cache miss")

// Client wraps the Redis client with portfolio view caching operations
type Client struct {
	rdb *redis.Client
}

// New creates a new Redis client
func New(cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// NewWithClient wraps an existing go-redis client
func NewWithClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping checks if Redis is reachable
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// ViewKey returns the key a rendered view is stored under. Views are
// namespaced by dataset fingerprint so a new dataset never serves stale
// entries.
func ViewKey(fingerprint, name string) string {
	return fmt.Sprintf("portfolio:%s:view:%s", fingerprint, name)
}

// SetView caches a rendered JSON view with TTL
func (c *Client) SetView(ctx context.Context, fingerprint, name string, body []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, ViewKey(fingerprint, name), body, ttl).Err()
}

// GetView retrieves a cached view, returning ErrMiss when absent
func (c *Client) GetView(ctx context.Context, fingerprint, name string) ([]byte, error) {
	body, err := c.rdb.Get(ctx, ViewKey(fingerprint, name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get view %s: %w", name, err)
	}
	return body, nil
}
