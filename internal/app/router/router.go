package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "media_backend/internal/feature/auth/transport/handler"
	storagehandler "media_backend/internal/feature/storage/transport/handler"
	platformhandler "media_backend/internal/platform/http/handler"
	"media_backend/internal/platform/token"
)

// NewRouter wires every endpoint. throttle guards the credential endpoints;
// verifier guards everything under /files.
func NewRouter(auth *authhandler.AuthHandler, files *storagehandler.StorageHandler,
	verifier token.Verifier, throttle gin.HandlerFunc) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// Liveness probe, no auth
	r.GET("/health", platformhandler.Health)
	r.HEAD("/health", platformhandler.Health)
	r.OPTIONS("/health", platformhandler.Health)

	// Credential endpoints, throttled per client IP
	authGroup := r.Group("/auth")
	authGroup.Use(throttle)
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", auth.Login)
	}

	// File endpoints require a bearer token
	fileGroup := r.Group("/files")
	fileGroup.Use(token.RequireAuth(verifier))
	{
		fileGroup.POST("", files.Upload)
		fileGroup.GET("", files.List)
		fileGroup.GET("/url", files.PresignedURL)
		fileGroup.POST("/url", files.UploadURL)
		fileGroup.DELETE("", files.Remove)
	}

	return r
}
