package usecase

import (
	"context"
	"errors"
	"fmt"

	"media_backend/internal/feature/auth/domain/entity"
)

// UserDirectory abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (adapters).
type UserDirectory interface {
	// Create persists a new user to the storage.
	// It returns ErrAlreadyExists when a user with the same email or name
	// already exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user matching the given email address,
	// exactly as persisted (no case normalization).
	// It returns ErrUserNotFound when no such user exists.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// dummyHash is a valid bcrypt hash compared against when the email is
// unknown, so a lookup miss costs the same as a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// CredentialValidator checks a presented email/password pair against the
// stored credential. It never mutates the directory.
type CredentialValidator struct {
	users  UserDirectory
	hasher PasswordHasher
}

// NewCredentialValidator creates a CredentialValidator over the given
// directory and hasher.
func NewCredentialValidator(users UserDirectory, hasher PasswordHasher) *CredentialValidator {
	return &CredentialValidator{users: users, hasher: hasher}
}

// Validate looks up the user by email and verifies the password against the
// stored hash. Unknown email and wrong password return the same
// ErrInvalidCredentials value; a hash comparison runs in both cases so the
// two paths cost the same. Directory failures other than a lookup miss are
// returned as-is for the caller to classify.
func (v *CredentialValidator) Validate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := v.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("directory lookup: %w", err)
	}

	hash := dummyHash
	if err == nil {
		hash = user.Password
	}

	if !v.hasher.Verify(password, hash) || err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
