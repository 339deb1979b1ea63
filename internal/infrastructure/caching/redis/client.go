package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenVersionPrefix is shared with the auth service, which owns the keys.
const tokenVersionPrefix = "tokenver:"

type Client struct {
	rdb *redis.Client
}

func New(url string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &Client{rdb: rdb}, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// GetTokenVersion returns the latest token version published for the user,
// or 0 when none is cached.
func (c *Client) GetTokenVersion(ctx context.Context, userID int64) (int64, error) {
	s, err := c.rdb.Get(ctx, tokenVersionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse token version %q: %w", s, err)
	}
	return v, nil
}

func tokenVersionKey(userID int64) string {
	return tokenVersionPrefix + strconv.FormatInt(userID, 10)
}
