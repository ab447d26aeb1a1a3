package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps Redis with an explicit availability flag. Callers must
// check Available() and skip caching when it is false; there is no
// silent no-op fallback, and ledger balances are never cached at all.
type Client struct {
	rdb       *redis.Client
	available bool
}

// New connects to Redis. An empty addr or a failed ping returns a client
// with Available() == false.
func New(addr, password string, db int) *Client {
	if addr == "" {
		return &Client{}
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[Cache] redis unavailable at %s: %v", addr, err)
		return &Client{}
	}
	return &Client{rdb: rdb, available: true}
}

func (c *Client) Available() bool {
	return c != nil && c.available
}

func (c *Client) Get(ctx context.Context, key string) (string, bool) {
	if !c.Available() {
		return "", false
	}
	v, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if !c.Available() {
		return
	}
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("[Cache] set %s: %v", key, err)
	}
}

func (c *Client) Delete(ctx context.Context, keys ...string) {
	if !c.Available() || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[Cache] delete: %v", err)
	}
}
