package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "media_backend/internal/feature/auth/adapters"
	authentity "media_backend/internal/feature/auth/domain/entity"
	authhandler "media_backend/internal/feature/auth/transport/handler"
	authusecase "media_backend/internal/feature/auth/usecase"
	storageentity "media_backend/internal/feature/storage/domain/entity"
	storagehandler "media_backend/internal/feature/storage/transport/handler"
	storageusecase "media_backend/internal/feature/storage/usecase"
	"media_backend/internal/platform/ratelimit"
	"media_backend/internal/platform/token"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubObjectStore keeps the storage feature wired without a real bucket.
type stubObjectStore struct{}

func (stubObjectStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	return "etag", nil
}
func (stubObjectStore) Delete(ctx context.Context, key string) error { return nil }
func (stubObjectStore) List(ctx context.Context, prefix string) ([]storageentity.Object, error) {
	return []storageentity.Object{{Key: "uploads/a", Size: 1}}, nil
}
func (stubObjectStore) Stat(ctx context.Context, key string) (*storageentity.Object, error) {
	return &storageentity.Object{Key: key}, nil
}
func (stubObjectStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://example.com/get", nil
}
func (stubObjectStore) PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://example.com/put", nil
}

// setupServer wires the real auth stack over an in-memory database.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authentity.User{}))

	userDir := authadapters.NewUserPostgres(db)
	hasher := authusecase.NewBcryptHasher(bcrypt.MinCost)
	issuer := token.NewIssuer("test-secret", time.Hour)
	validator := authusecase.NewCredentialValidator(userDir, hasher)
	sessions := authusecase.NewSessionService(userDir, hasher, validator, issuer)

	authH := authhandler.NewAuthHandler(sessions)
	filesH := storagehandler.NewStorageHandler(storageusecase.NewStorageUsecase(stubObjectStore{}))
	limiter := ratelimit.NewLimiter(nil, 1000, time.Minute, "test")

	return NewRouter(authH, filesH, issuer, ratelimit.Middleware(limiter))
}

func doJSON(router *gin.Engine, method, path string, body gin.H) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewBuffer(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestServer_Health(t *testing.T) {
	router := setupServer(t)

	w := doJSON(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())
}

func TestServer_RegisterLoginFlow(t *testing.T) {
	router := setupServer(t)

	// Register
	w := doJSON(router, http.MethodPost, "/auth/register",
		gin.H{"name": "John Doe", "email": "john@example.com", "password": "securePw1"})
	require.Equal(t, http.StatusCreated, w.Code)

	var registered map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered["id"])
	assert.Equal(t, "John Doe", registered["name"])
	assert.Equal(t, "john@example.com", registered["email"])
	assert.NotContains(t, registered, "password")

	// Login with the same credentials
	w = doJSON(router, http.MethodPost, "/auth/login",
		gin.H{"email": "john@example.com", "password": "securePw1"})
	require.Equal(t, http.StatusOK, w.Code)

	var login map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.NotEmpty(t, login["accessToken"])

	// Wrong password and unknown email yield the same failure shape
	wrongPw := doJSON(router, http.MethodPost, "/auth/login",
		gin.H{"email": "john@example.com", "password": "wrongPw1"})
	unknown := doJSON(router, http.MethodPost, "/auth/login",
		gin.H{"email": "nobody@example.com", "password": "securePw1"})

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())
}

func TestServer_RegisterConflict(t *testing.T) {
	router := setupServer(t)

	first := doJSON(router, http.MethodPost, "/auth/register",
		gin.H{"name": "John Doe", "email": "john@example.com", "password": "securePw1"})
	require.Equal(t, http.StatusCreated, first.Code)

	dupEmail := doJSON(router, http.MethodPost, "/auth/register",
		gin.H{"name": "Jane Doe", "email": "john@example.com", "password": "securePw1"})
	assert.Equal(t, http.StatusConflict, dupEmail.Code)

	// Name carries a unique constraint as well
	dupName := doJSON(router, http.MethodPost, "/auth/register",
		gin.H{"name": "John Doe", "email": "jane@example.com", "password": "securePw1"})
	assert.Equal(t, http.StatusConflict, dupName.Code)
}

func TestServer_FilesRequireBearerToken(t *testing.T) {
	router := setupServer(t)

	// No token
	w := doJSON(router, http.MethodGet, "/files", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Register, login, then reuse the issued token
	doJSON(router, http.MethodPost, "/auth/register",
		gin.H{"name": "John Doe", "email": "john@example.com", "password": "securePw1"})
	login := doJSON(router, http.MethodPost, "/auth/login",
		gin.H{"email": "john@example.com", "password": "securePw1"})
	require.Equal(t, http.StatusOK, login.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &body))

	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	req.Header.Set("Authorization", "Bearer "+body["accessToken"])
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "uploads/a")
}
