// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// LoginReq represents the request body for the /auth/login endpoint.
// It uses Gin's binding tags for validation (required, email format).
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRes represents the response for a successful login.
type LoginRes struct {
	AccessToken string `json:"accessToken"`
}
