package usecase

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher abstracts the one-way transform applied to credential
// secrets. Following Go convention, the interface is defined by the consumer
// (usecase) rather than the provider.
type PasswordHasher interface {
	// Hash returns a salted one-way hash of plaintext. Two calls with the
	// same input produce different outputs because each call draws a fresh
	// salt.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hashed. It returns false for
	// a malformed hash instead of failing, so a corrupted record fails
	// closed.
	Verify(plaintext, hashed string) bool
}

// bcryptHasher implements PasswordHasher using bcrypt.
type bcryptHasher struct {
	cost int
}

var _ PasswordHasher = (*bcryptHasher)(nil)

// NewBcryptHasher creates a PasswordHasher with the given work factor.
// A cost outside bcrypt's valid range falls back to cost 10, the cost used
// for existing records.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 10
	}
	return &bcryptHasher{cost: cost}
}

// Hash generates a salted bcrypt hash of plaintext.
func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify compares plaintext against a stored bcrypt hash.
// bcrypt's comparison runs in time independent of where a mismatch occurs,
// and any parse error on the stored hash simply reports a mismatch.
func (h *bcryptHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
