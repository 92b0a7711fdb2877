// Package entity defines the domain entities for the storage feature.
package entity

import "time"

// Object describes a stored file's metadata as reported by the object store.
type Object struct {
	// Key is the full object key within the bucket.
	Key string

	// Size is the object size in bytes.
	Size int64

	// ETag is the storage-assigned entity tag.
	ETag string

	// LastModified is the storage-side modification timestamp.
	LastModified time.Time

	// ContentType is the stored MIME type, when known.
	ContentType string
}
