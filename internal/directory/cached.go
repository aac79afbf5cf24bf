package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

const cacheKeyPrefix = "chirp:directory:user:"

// Cache stores directory records by user id.
type Cache interface {
	GetMany(ctx context.Context, ids []string) (map[string]Record, error)
	SetMany(ctx context.Context, records []Record) error
}

// CachedDirectory answers id lookups from Cache first and asks the inner
// directory only for misses. Cache failures degrade to the inner directory.
type CachedDirectory struct {
	inner  Directory
	cache  Cache
	logger *slog.Logger
}

func NewCachedDirectory(log *slog.Logger, inner Directory, cache Cache) *CachedDirectory {
	if log == nil {
		log = slog.Default()
	}
	return &CachedDirectory{
		inner:  inner,
		cache:  cache,
		logger: log.With(slog.String("service", "directory"), slog.String("layer", "cache")),
	}
}

func (d *CachedDirectory) ListByIDs(ctx context.Context, ids []string, limit int) ([]Record, error) {
	if err := checkBatch(ids, limit); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []Record{}, nil
	}

	hits, err := d.cache.GetMany(ctx, ids)
	if err != nil {
		d.logger.Warn("directory cache read failed", slog.Any("error", err))
		hits = nil
	}
	records := make([]Record, 0, len(ids))
	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if rec, ok := hits[id]; ok {
			records = append(records, rec)
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return records, nil
	}

	fetched, err := d.inner.ListByIDs(ctx, missing, limit)
	if err != nil {
		return nil, err
	}
	if len(fetched) > 0 {
		if err := d.cache.SetMany(ctx, fetched); err != nil {
			d.logger.Warn("directory cache write failed", slog.Any("error", err))
		}
	}
	return append(records, fetched...), nil
}

// ListByUsername is not cached; usernames can be reassigned.
func (d *CachedDirectory) ListByUsername(ctx context.Context, username string) ([]Record, error) {
	return d.inner.ListByUsername(ctx, username)
}

// RedisCache is a Cache backed by JSON values in Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) GetMany(ctx context.Context, ids []string) (map[string]Record, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}
	out := make(map[string]Record, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			continue
		}
		out[rec.ID] = rec
	}
	return out, nil
}

func (c *RedisCache) SetMany(ctx context.Context, records []Record) error {
	pipe := c.client.Pipeline()
	for _, rec := range records {
		raw, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record %s: %w", rec.ID, err)
		}
		pipe.Set(ctx, cacheKey(rec.ID), raw, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline: %w", err)
	}
	return nil
}

func cacheKey(id string) string {
	return cacheKeyPrefix + id
}
