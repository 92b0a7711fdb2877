// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"media_backend/internal/feature/auth/domain/entity"
	"media_backend/internal/feature/auth/transport/http/dto"
	"media_backend/internal/feature/auth/usecase"
)

// SessionUsecase defines the auth operations consumed by this handler.
// Following Go convention, the interface is defined by the consumer (handler)
// rather than the provider (usecase).
type SessionUsecase interface {
	// Authenticate verifies the credentials and returns a bearer token.
	Authenticate(ctx context.Context, email, password string) (string, error)
	// Register creates a new user with a hashed credential.
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
}

// AuthHandler handles HTTP requests for the auth endpoints.
type AuthHandler struct {
	sessions SessionUsecase
}

// NewAuthHandler creates an AuthHandler with the session usecase injected.
func NewAuthHandler(sessions SessionUsecase) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Register handles the user registration endpoint.
// - binds the request JSON to RegisterReq, 400 on validation failure
// - 409 on duplicate email or name
// - 201 with the public identity fields on success; the credential hash is
//   redacted here at the boundary and never serialized
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	user, err := h.sessions.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		case errors.Is(err, usecase.ErrAlreadyExists):
			slog.Warn("register conflict", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, dto.ErrorRes{Error: "user already exists"})
		default:
			slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		}
		return
	}

	slog.Info("user registered", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.RegisterRes{ID: user.ID, Name: user.Name, Email: user.Email})
}

// Login handles the user login endpoint.
// - binds the request JSON to LoginReq, 400 on validation failure
// - 401 with one fixed body for every credential failure, so an unknown
//   email and a wrong password are indistinguishable to the caller
// - 200 with the bearer token on success
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	token, err := h.sessions.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid credentials"})
			return
		}
		slog.Error("login error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{AccessToken: token})
}
