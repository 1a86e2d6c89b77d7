package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Client wraps the Redis client with application-specific configuration.
// A single shared client is used across the application to reuse connection
// pooling.
type Client struct {
	*redis.Client
}

// NewClient creates a new Redis client from the given URL.
// URL format: redis://[:password@]host:port[/db]
func NewClient(redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	return &Client{Client: redis.NewClient(opts)}, nil
}

// Ping verifies the connection to Redis. Call on startup to fail fast when
// Redis is unreachable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.Client.Close()
}
