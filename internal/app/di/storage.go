// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	storageadapters "media_backend/internal/feature/storage/adapters"
	"media_backend/internal/feature/storage/usecase"
	"media_backend/internal/platform/cache"
	"media_backend/internal/platform/config"
)

// NewObjectStore creates the S3-backed ObjectStore and ensures the bucket
// exists. With a Redis client available, presigned download URLs are served
// through the caching decorator.
func NewObjectStore(ctx context.Context, cfg *config.Config, rdb *redis.Client) (usecase.ObjectStore, error) {
	store, err := storageadapters.NewS3Store(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init object store: %w", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	if rdb == nil {
		return store, nil
	}
	return cache.NewPresignCachingStore(rdb, cfg.RedisTTL, store, "presign"), nil
}
