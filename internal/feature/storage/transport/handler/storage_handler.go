// Package handler provides HTTP handlers for the storage feature.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"media_backend/internal/feature/storage/domain/entity"
	"media_backend/internal/feature/storage/transport/http/dto"
	"media_backend/internal/feature/storage/usecase"
)

// StorageUsecase defines the file operations consumed by this handler.
type StorageUsecase interface {
	Upload(ctx context.Context, body io.Reader, size int64, contentType string) (*usecase.UploadResult, error)
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	UploadURL(ctx context.Context, expiry time.Duration) (string, string, error)
	Remove(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]entity.Object, error)
}

// StorageHandler handles HTTP requests for the /files endpoints. All of them
// sit behind the bearer-token guard.
type StorageHandler struct {
	files StorageUsecase
}

// NewStorageHandler creates a StorageHandler with the usecase injected.
func NewStorageHandler(files StorageUsecase) *StorageHandler {
	return &StorageHandler{files: files}
}

// Upload handles a multipart file upload under the "file" field.
// Returns 201 with the stored key, a 24h download URL, and the etag.
func (h *StorageHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "missing file field"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("open multipart file failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	res, err := h.files.Upload(c.Request.Context(), file, fileHeader.Size, contentType)
	if err != nil {
		slog.Error("upload failed", "filename", fileHeader.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		return
	}

	slog.Info("file uploaded", "key", res.Key, "size", fileHeader.Size)
	c.JSON(http.StatusCreated, dto.UploadRes{Key: res.Key, URL: res.URL, ETag: res.ETag})
}

// List returns the stored objects, optionally filtered by ?prefix=.
func (h *StorageHandler) List(c *gin.Context) {
	objects, err := h.files.List(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		slog.Error("list objects failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		return
	}

	files := make([]dto.FileRes, 0, len(objects))
	for _, obj := range objects {
		files = append(files, dto.FileRes{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	c.JSON(http.StatusOK, dto.ListRes{Files: files})
}

// PresignedURL returns a download URL for ?key=, valid for ?expiry= seconds.
func (h *StorageHandler) PresignedURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "missing key"})
		return
	}

	url, err := h.files.PresignedURL(c.Request.Context(), key, expiryFromQuery(c))
	if err != nil {
		slog.Error("presign failed", "key", key, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.PresignRes{URL: url})
}

// UploadURL mints a fresh key and returns a presigned PUT URL for it.
func (h *StorageHandler) UploadURL(c *gin.Context) {
	key, url, err := h.files.UploadURL(c.Request.Context(), expiryFromQuery(c))
	if err != nil {
		slog.Error("presign upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.PresignRes{Key: key, URL: url})
}

// Remove deletes the object named by ?key=. Returns 204 on success.
func (h *StorageHandler) Remove(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "missing key"})
		return
	}

	if err := h.files.Remove(c.Request.Context(), key); err != nil {
		slog.Error("delete failed", "key", key, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// expiryFromQuery reads ?expiry= in seconds; 0 lets the usecase apply its
// default.
func expiryFromQuery(c *gin.Context) time.Duration {
	seconds, err := strconv.Atoi(c.Query("expiry"))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
