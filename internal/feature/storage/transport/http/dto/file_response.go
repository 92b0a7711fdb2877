// Package dto defines data transfer objects for the storage feature's HTTP
// transport layer.
package dto

import "time"

// UploadRes is returned after a successful direct upload.
type UploadRes struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	ETag string `json:"etag"`
}

// FileRes describes one stored object.
type FileRes struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// ListRes wraps the file listing.
type ListRes struct {
	Files []FileRes `json:"files"`
}

// PresignRes carries a presigned URL, and the fresh key for upload URLs.
type PresignRes struct {
	Key string `json:"key,omitempty"`
	URL string `json:"url"`
}

// ErrorRes is the uniform error envelope for storage endpoints.
type ErrorRes struct {
	Error string `json:"error"`
}
