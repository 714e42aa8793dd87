package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// NewRedisClient accepts either a redis:// URL or a bare host:port and checks the
// connection before returning.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("неверный REDIS_URL %q: %w", addr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis недоступен: %w", err)
	}

	return client, nil
}

// New returns a Redis-backed cache, or an in-memory one when Redis cannot be reached.
func New(ctx context.Context, addr, prefix string) ResponseCache {
	client, err := NewRedisClient(ctx, addr)
	if err != nil {
		slog.Warn("кэш страниц работает в памяти процесса", "error", err)
		return NewMemoryCache()
	}

	slog.Info("redis подключен", "addr", client.Options().Addr)
	return NewRedisCache(client, prefix)
}

func (c *RedisCache) key(key string) string {
	return c.prefix + key
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Entry, bool, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения кэша: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, fmt.Errorf("повреждённая запись кэша %s: %w", key, err)
	}

	return &entry, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("ошибка сериализации записи кэша: %w", err)
	}

	if err := c.client.Set(ctx, c.key(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("ошибка записи в кэш: %w", err)
	}

	return nil
}

// Clear deletes every key under the cache prefix. Other keys in the database are kept.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("ошибка обхода ключей кэша: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("ошибка очистки кэша: %w", err)
	}

	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
