package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"admissions-chatbot-be/internal/pkg/logger"
)

// RedisCache is a cache-aside helper over redis. A redis outage never
// surfaces to callers; every operation degrades to a miss.
type RedisCache struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	enabled bool
	log     logger.ILogger
}

func NewRedisCache(redisURL, prefix string, ttl time.Duration, log logger.ILogger) *RedisCache {
	c := &RedisCache{prefix: prefix, ttl: ttl, log: log}
	if redisURL == "" {
		log.Warn("cache", "redis url not set, cache disabled", nil)
		return c
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Error("cache", "invalid redis url, cache disabled", map[string]interface{}{"error": err.Error()})
		return c
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error("cache", "redis ping failed, cache disabled", map[string]interface{}{"error": err.Error()})
		return c
	}

	c.client = client
	c.enabled = true
	log.Info("cache", "redis cache connected", map[string]interface{}{"prefix": prefix})
	return c
}

// Key builds a deterministic cache key from the call name and its
// arguments. Arguments are sorted so equivalent calls share a key.
func (c *RedisCache) Key(call string, args map[string]string) string {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+args[name])
	}
	return fmt.Sprintf("%s:%s:%s", c.prefix, call, strings.Join(parts, "|"))
}

// Get loads a cached JSON value into dest. Returns false on miss or on
// any redis error.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if !c.enabled {
		return false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache", "redis get failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		c.log.Warn("cache", "cached value corrupt, dropping", map[string]interface{}{"key": key})
		c.client.Del(ctx, key)
		return false
	}
	return true
}

// Set stores a JSON value with the configured TTL. Errors are logged and
// swallowed.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) {
	if !c.enabled {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache", "cache marshal failed", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("cache", "redis set failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
