// Package usecase implements the business logic for the storage feature.
package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"media_backend/internal/feature/storage/domain/entity"
)

const (
	// uploadURLValidity is how long the download URL returned by Upload
	// stays valid.
	uploadURLValidity = 24 * time.Hour

	// defaultPresignExpiry applies when a caller does not request a specific
	// expiry.
	defaultPresignExpiry = time.Hour

	// maxPresignExpiry caps caller-requested expiries; S3 rejects presigned
	// URLs longer than seven days anyway.
	maxPresignExpiry = 7 * 24 * time.Hour
)

// ObjectStore abstracts the S3-compatible bucket the feature writes to.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (adapters).
type ObjectStore interface {
	// Put stores body under key and returns the storage-assigned etag.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)

	// Delete removes the object with the given key.
	Delete(ctx context.Context, key string) error

	// List returns metadata for every object whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]entity.Object, error)

	// Stat returns metadata for a single object.
	Stat(ctx context.Context, key string) (*entity.Object, error)

	// PresignGet returns a time-limited download URL for key.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)

	// PresignPut returns a time-limited upload URL for key.
	PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// UploadResult is returned after a successful upload.
type UploadResult struct {
	Key  string
	URL  string
	ETag string
}

// StorageUsecase exposes the file operations served by the /files endpoints.
type StorageUsecase struct {
	store ObjectStore
}

// NewStorageUsecase creates a StorageUsecase over the given object store.
func NewStorageUsecase(store ObjectStore) *StorageUsecase {
	return &StorageUsecase{store: store}
}

// objectKey builds a collision-free key, grouped by upload date.
func objectKey() string {
	d := time.Now()
	return fmt.Sprintf("uploads/%d/%02d/%02d/%s", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Upload stores the file under a fresh key and returns the key, a download
// URL valid for 24 hours, and the etag.
func (u *StorageUsecase) Upload(ctx context.Context, body io.Reader, size int64, contentType string) (*UploadResult, error) {
	key := objectKey()

	etag, err := u.store.Put(ctx, key, body, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("put object: %w", err)
	}

	url, err := u.store.PresignGet(ctx, key, uploadURLValidity)
	if err != nil {
		return nil, fmt.Errorf("presign download url: %w", err)
	}

	return &UploadResult{Key: key, URL: url, ETag: etag}, nil
}

// PresignedURL returns a download URL for an existing object. A non-positive
// expiry falls back to the default; oversized expiries are capped.
func (u *StorageUsecase) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}
	if expiry > maxPresignExpiry {
		expiry = maxPresignExpiry
	}
	return u.store.PresignGet(ctx, key, expiry)
}

// UploadURL mints a fresh key and returns a presigned PUT URL for it, letting
// clients push large files to the bucket directly.
func (u *StorageUsecase) UploadURL(ctx context.Context, expiry time.Duration) (string, string, error) {
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}
	if expiry > maxPresignExpiry {
		expiry = maxPresignExpiry
	}

	key := objectKey()
	url, err := u.store.PresignPut(ctx, key, expiry)
	if err != nil {
		return "", "", fmt.Errorf("presign upload url: %w", err)
	}
	return key, url, nil
}

// Remove deletes the object with the given key.
func (u *StorageUsecase) Remove(ctx context.Context, key string) error {
	return u.store.Delete(ctx, key)
}

// List returns metadata for the objects under prefix.
func (u *StorageUsecase) List(ctx context.Context, prefix string) ([]entity.Object, error) {
	return u.store.List(ctx, prefix)
}

// Info returns metadata for a single object.
func (u *StorageUsecase) Info(ctx context.Context, key string) (*entity.Object, error) {
	return u.store.Stat(ctx, key)
}
