package rdx

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Conn wraps the redis client used for response caching and cross-instance
// event fan-out. Redis is optional: with REDIS_URL unset every method is a
// no-op, so single-instance deployments run without it.
type Conn struct {
	client *redis.Client
}

// NewConn connects using REDIS_URL, or returns a disabled Conn when it is unset.
func NewConn() *Conn {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set; caching and event fan-out disabled")
		return &Conn{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	return &Conn{client: client}
}

func (c *Conn) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Conn) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// GetJSON loads a cached value into out. Returns false on miss, disabled
// connection, or any redis error — cache failures never fail the request.
func (c *Conn) GetJSON(ctx context.Context, key string, out any) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("rdx: corrupt cache entry %s: %v", key, err)
		c.client.Del(ctx, key)
		return false
	}
	return true
}

func (c *Conn) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		log.Printf("rdx: marshal for cache key %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("rdx: set %s: %v", key, err)
	}
}

func (c *Conn) Del(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("rdx: del %v: %v", keys, err)
	}
}

// Publish sends a payload on a pub/sub channel so sibling instances see it.
func (c *Conn) Publish(ctx context.Context, channel string, payload []byte) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Publish(ctx, channel, payload).Err()
}

// Subscribe opens a pub/sub subscription, or returns nil when disabled.
func (c *Conn) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	if !c.Enabled() {
		return nil
	}
	return c.client.Subscribe(ctx, channel)
}
