// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"media_backend/internal/feature/storage/domain/entity"
	"media_backend/internal/feature/storage/usecase"
)

// PresignCachingStore decorates an ObjectStore with Redis caching of
// presigned download URLs. Signing is cheap but the URLs are requested far
// more often than objects change, and caching keeps repeated reads off the
// store's signing path. Writes pass through and invalidate the affected key.
type PresignCachingStore struct {
	inner     usecase.ObjectStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that PresignCachingStore implements ObjectStore.
var _ usecase.ObjectStore = (*PresignCachingStore)(nil)

// NewPresignCachingStore decorates an ObjectStore with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses
// "presign". A cached URL must still be valid when served, so the effective
// TTL never exceeds half the requested expiry.
func NewPresignCachingStore(rdb *redis.Client, ttl time.Duration, inner usecase.ObjectStore, namespace string) *PresignCachingStore {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "presign"
	}
	return &PresignCachingStore{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// PresignGet returns a download URL, checking the cache first and falling
// back to the inner store. Redis failures fall through to the inner store.
func (c *PresignCachingStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if c.rdb == nil {
		return c.inner.PresignGet(ctx, key, expiry)
	}

	cacheKey := c.cacheKey(key, expiry)

	// 1) Check cache
	if url, err := c.rdb.Get(ctx, cacheKey).Result(); err == nil && url != "" {
		return url, nil
	}

	// 2) Fall back to the store's signer
	url, err := c.inner.PresignGet(ctx, key, expiry)
	if err != nil {
		return "", err
	}

	// 3) Store in cache (best effort); never serve a URL past its validity
	ttl := c.ttl
	if ttl > expiry/2 {
		ttl = expiry / 2
	}
	if ttl > 0 {
		_ = c.rdb.Set(ctx, cacheKey, url, ttl).Err()
	}

	return url, nil
}

// Put uploads through the inner store and invalidates cached URLs for the
// key.
func (c *PresignCachingStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	etag, err := c.inner.Put(ctx, key, body, size, contentType)
	if err != nil {
		return "", err
	}
	c.invalidate(ctx, key)
	return etag, nil
}

// Delete removes through the inner store and invalidates cached URLs for the
// key.
func (c *PresignCachingStore) Delete(ctx context.Context, key string) error {
	if err := c.inner.Delete(ctx, key); err != nil {
		return err
	}
	c.invalidate(ctx, key)
	return nil
}

// List delegates to the inner store.
func (c *PresignCachingStore) List(ctx context.Context, prefix string) ([]entity.Object, error) {
	return c.inner.List(ctx, prefix)
}

// Stat delegates to the inner store.
func (c *PresignCachingStore) Stat(ctx context.Context, key string) (*entity.Object, error) {
	return c.inner.Stat(ctx, key)
}

// PresignPut delegates to the inner store; upload URLs are single-use by
// convention and never cached.
func (c *PresignCachingStore) PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return c.inner.PresignPut(ctx, key, expiry)
}

// cacheKey generates a cache key for a specific object and expiry.
func (c *PresignCachingStore) cacheKey(key string, expiry time.Duration) string {
	return fmt.Sprintf("%s:%s:%d", c.namespace, safe(key), int64(expiry.Seconds()))
}

// invalidate drops every cached URL for the object (best effort).
func (c *PresignCachingStore) invalidate(ctx context.Context, key string) {
	if c.rdb == nil {
		return
	}
	pattern := fmt.Sprintf("%s:%s:*", c.namespace, safe(key))
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			_ = c.rdb.Del(ctx, keys...).Err()
		}
		cursor = cur
		if cursor == 0 {
			return
		}
	}
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
