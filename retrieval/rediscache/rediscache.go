// Package rediscache provides a Redis-backed caching decorator for a
// retrieval.Retriever.
//
// The core never caches expansion or reranking results across requests;
// caching is an external layer, and this package is that layer for the
// retrieval call. Cache misses and Redis failures fall through to the
// wrapped retriever, so a degraded cache never degrades answers.
package rediscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/manabi-ai/semrag/retrieval"
)

// DefaultTTL is the cache entry lifetime when none is configured.
const DefaultTTL = 5 * time.Minute

// Options configures the cached retriever.
type Options struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string

	// TTL is the cache entry lifetime. Defaults to DefaultTTL.
	TTL time.Duration

	// Prefix namespaces cache keys. Defaults to "semrag:search".
	Prefix string

	// Logger records cache errors. Defaults to slog.Default().
	Logger *slog.Logger
}

// Cache wraps a Retriever with Redis-backed search result caching.
type Cache struct {
	inner  retrieval.Retriever
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// New creates a caching decorator around inner. The Redis connection is
// verified with a ping before returning.
func New(inner retrieval.Retriever, opts Options) (*Cache, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.TTL == 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Prefix == "" {
		opts.Prefix = "semrag:search"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{
		inner:  inner,
		client: client,
		ttl:    opts.TTL,
		prefix: opts.Prefix,
		logger: opts.Logger,
	}, nil
}

// Index forwards to the wrapped retriever and invalidates the cache, since
// new documents can change any query's results.
func (c *Cache) Index(ctx context.Context, docs ...retrieval.Document) error {
	if err := c.inner.Index(ctx, docs...); err != nil {
		return err
	}

	iter := c.client.Scan(ctx, 0, c.prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("cache invalidation failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache invalidation scan failed", "error", err)
	}
	return nil
}

// Search returns cached hits when present, otherwise queries the wrapped
// retriever and stores the result.
func (c *Cache) Search(ctx context.Context, query string, topK int) ([]retrieval.Hit, error) {
	key := c.key(query, topK)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var hits []retrieval.Hit
		if unmarshalErr := json.Unmarshal(data, &hits); unmarshalErr == nil {
			return hits, nil
		}
		// Corrupt entry: drop it and fall through.
		_ = c.client.Del(ctx, key).Err()
	} else if err != redis.Nil {
		c.logger.Warn("cache read failed", "error", err)
	}

	hits, err := c.inner.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	if data, marshalErr := json.Marshal(hits); marshalErr == nil {
		if setErr := c.client.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			c.logger.Warn("cache write failed", "error", setErr)
		}
	}
	return hits, nil
}

// Close closes the Redis connection. The wrapped retriever is not closed.
func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) key(query string, topK int) string {
	sum := sha256.Sum256([]byte(query))
	return fmt.Sprintf("%s:%s:%d", c.prefix, hex.EncodeToString(sum[:]), topK)
}
