package rediscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"listing-console-service/internal/contextkeys"
	"listing-console-service/internal/core/domain"
	"listing-console-service/internal/core/port"
)

// entryTTL keeps abandoned session entries from accumulating forever. The
// cache contract only requires entries to outlive the session.
const entryTTL = 24 * time.Hour

// QueryCache is a Redis-backed listing cache. The canonical request key is
// hashed so key length stays bounded, and prefixed with the session id so
// sessions never see each other's entries. Every Redis failure degrades to a
// cache miss.
type QueryCache struct {
	client *redis.Client
	prefix string
}

func NewQueryCache(client *redis.Client, sessionID string) *QueryCache {
	return &QueryCache{
		client: client,
		prefix: "listing:" + sessionID + ":",
	}
}

func (c *QueryCache) redisKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return c.prefix + hex.EncodeToString(sum[:])
}

func (c *QueryCache) Get(ctx context.Context, key string) (domain.CacheEntry, bool) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "RedisQueryCache"})

	raw, err := c.client.Get(ctx, c.redisKey(key)).Result()
	if err == redis.Nil {
		return domain.CacheEntry{}, false
	}
	if err != nil {
		logger.Warn("Redis GET failed, treating as cache miss", port.Fields{"error": err.Error()})
		return domain.CacheEntry{}, false
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		logger.Warn("Corrupt cache entry, treating as cache miss", port.Fields{"error": err.Error()})
		return domain.CacheEntry{}, false
	}
	return entry, true
}

func (c *QueryCache) Put(ctx context.Context, key string, entry domain.CacheEntry) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "RedisQueryCache"})

	raw, err := json.Marshal(entry)
	if err != nil {
		logger.Warn("Failed to marshal cache entry", port.Fields{"error": err.Error()})
		return
	}
	if err := c.client.Set(ctx, c.redisKey(key), raw, entryTTL).Err(); err != nil {
		logger.Warn("Redis SET failed, entry not cached", port.Fields{"error": err.Error()})
	}
}

// NewRedisClient connects and verifies the connection with a ping.
func NewRedisClient(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
