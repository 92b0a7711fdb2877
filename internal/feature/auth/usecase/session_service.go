package usecase

import (
	"context"
	"errors"
	"fmt"

	"media_backend/internal/feature/auth/domain/entity"
)

// minPasswordLength is the minimum number of characters for a registration
// password.
const minPasswordLength = 6

// TokenIssuer abstracts bearer-token issuance.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (platform/token).
type TokenIssuer interface {
	// Issue signs a token carrying the given email and the configured expiry.
	Issue(email string) (string, error)
}

// SessionService orchestrates credential validation and token issuance for
// login, and hash-on-write user creation for registration. Each call is a
// single synchronous pass: nothing is retried and no partial state survives a
// failure.
type SessionService struct {
	users     UserDirectory
	hasher    PasswordHasher
	validator *CredentialValidator
	tokens    TokenIssuer
}

// NewSessionService creates a SessionService with its collaborators injected.
func NewSessionService(users UserDirectory, hasher PasswordHasher, validator *CredentialValidator, tokens TokenIssuer) *SessionService {
	return &SessionService{
		users:     users,
		hasher:    hasher,
		validator: validator,
		tokens:    tokens,
	}
}

// Authenticate verifies the credentials and mints a bearer token whose sole
// claim is the authenticated email. ErrInvalidCredentials passes through
// unchanged; any other downstream failure surfaces as ErrInternal.
func (s *SessionService) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.validator.Validate(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("%w: issue token: %v", ErrInternal, err)
	}

	return token, nil
}

// Register hashes the password and creates the user in the directory. The
// plaintext is hashed exactly once, before any persistence call, so the
// directory never sees a plaintext secret. A uniqueness violation on email or
// name surfaces as ErrAlreadyExists; any other directory failure as
// ErrInternal. Writes are assumed atomic at the storage layer, so there is no
// compensation path.
func (s *SessionService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", ErrInternal, err)
	}

	user := &entity.User{Name: name, Email: email, Password: hashed}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: create user: %v", ErrInternal, err)
	}

	return user, nil
}
