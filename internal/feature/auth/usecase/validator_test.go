package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"media_backend/internal/feature/auth/domain/entity"
)

// mockUserDirectory is a mock implementation of the UserDirectory interface.
// It simulates persistence operations during testing.
type mockUserDirectory struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
}

// Create is the mock implementation of the Create method.
func (m *mockUserDirectory) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil // Default: success
}

// FindByEmail is the mock implementation of the FindByEmail method.
func (m *mockUserDirectory) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound // Default: not found
}

func testUserWithPassword(t *testing.T, password string) *entity.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	return &entity.User{
		ID:       "f81d4fae-7dec-11d0-a765-00a0c91e6bf6",
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: string(hashed),
	}
}

func TestCredentialValidator_Validate(t *testing.T) {
	t.Parallel()

	user := testUserWithPassword(t, "securePw1")
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("successful validation returns the identity", func(t *testing.T) {
		t.Parallel()

		dir := &mockUserDirectory{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == user.Email {
					return user, nil
				}
				return nil, ErrUserNotFound
			},
		}

		v := NewCredentialValidator(dir, hasher)
		got, err := v.Validate(context.Background(), "john@example.com", "securePw1")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != user.ID || got.Email != user.Email {
			t.Errorf("expected user %q, got %q", user.Email, got.Email)
		}
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()

		dir := &mockUserDirectory{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == user.Email {
					return user, nil
				}
				return nil, ErrUserNotFound
			},
		}

		v := NewCredentialValidator(dir, hasher)

		_, unknownErr := v.Validate(context.Background(), "nobody@example.com", "securePw1")
		_, wrongPwErr := v.Validate(context.Background(), "john@example.com", "wrongPw1")

		if !errors.Is(unknownErr, ErrInvalidCredentials) {
			t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
		}
		if !errors.Is(wrongPwErr, ErrInvalidCredentials) {
			t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPwErr)
		}
		// Same error value, same message: nothing distinguishes the two paths
		if unknownErr.Error() != wrongPwErr.Error() {
			t.Errorf("error messages differ: %q vs %q", unknownErr, wrongPwErr)
		}
	})

	t.Run("directory failure is not reported as invalid credentials", func(t *testing.T) {
		t.Parallel()

		dirErr := errors.New("connection refused")
		dir := &mockUserDirectory{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, dirErr
			},
		}

		v := NewCredentialValidator(dir, hasher)
		_, err := v.Validate(context.Background(), "john@example.com", "securePw1")

		if !errors.Is(err, dirErr) {
			t.Errorf("expected wrapped directory error, got %v", err)
		}
		if errors.Is(err, ErrInvalidCredentials) {
			t.Error("infrastructure failure must not look like invalid credentials")
		}
	})

	t.Run("repeated validation does not mutate the stored record", func(t *testing.T) {
		t.Parallel()

		stored := *user
		dir := &mockUserDirectory{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				u := stored
				return &u, nil
			},
		}

		v := NewCredentialValidator(dir, hasher)

		first, err := v.Validate(context.Background(), user.Email, "securePw1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := v.Validate(context.Background(), user.Email, "securePw1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if *first != *second {
			t.Error("expected structurally equal results for repeated validation")
		}
		if stored != *user {
			t.Error("stored record was mutated by validation")
		}
	})
}
