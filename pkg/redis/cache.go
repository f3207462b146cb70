package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache provides typed JSON storage utilities
// ⭐ SSOT: 캐시 헬퍼는 여기서만
type Cache struct {
	client *Client
	prefix string
}

// NewCache creates a new cache helper
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
	}
}

// Key returns the fully-qualified key
func (c *Cache) Key(key string) string {
	return fmt.Sprintf("%s:%s", c.prefix, key)
}

// Get retrieves a stored value
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.client.Enabled() {
		return false, nil
	}

	data, err := c.client.Redis().Get(ctx, c.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		// Key not found is not an error
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get failed: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}

	return true, nil
}

// Set stores a value with TTL (0 = no expiry)
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.client.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	return c.client.Redis().Set(ctx, c.Key(key), data, ttl).Err()
}

// Delete removes a stored value
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.client.Enabled() {
		return nil
	}

	return c.client.Redis().Del(ctx, c.Key(key)).Err()
}

// Append pushes a JSON value onto the tail of a list, trimming it to maxLen (0 = unbounded)
func (c *Cache) Append(ctx context.Context, key string, value interface{}, maxLen int64) error {
	if !c.client.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	pipe := c.client.Redis().TxPipeline()
	pipe.RPush(ctx, c.Key(key), data)
	if maxLen > 0 {
		pipe.LTrim(ctx, c.Key(key), -maxLen, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache append failed: %w", err)
	}
	return nil
}

// Range returns raw list entries between start and stop (inclusive, redis semantics)
func (c *Cache) Range(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	if !c.client.Enabled() {
		return nil, nil
	}

	vals, err := c.client.Redis().LRange(ctx, c.Key(key), start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("cache range failed: %w", err)
	}

	out := make([][]byte, 0, len(vals))
	for _, v := range vals {
		out = append(out, []byte(v))
	}
	return out, nil
}

// Predefined TTLs
const (
	TTLNone = time.Duration(0)
	TTLWeek = 7 * 24 * time.Hour // 스냅샷 보관
)

// Common key generators
func LastScanKey() string {
	return "snapshot:last"
}

func ScanHistoryKey() string {
	return "snapshot:history"
}

func ScanKey(scanID string) string {
	return fmt.Sprintf("snapshot:%s", scanID)
}
