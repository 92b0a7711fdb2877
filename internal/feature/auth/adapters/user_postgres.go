// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"media_backend/internal/feature/auth/domain/entity"
	"media_backend/internal/feature/auth/usecase"
)

// userPostgres is the GORM implementation of the UserDirectory interface.
// It relies on gorm.Config{TranslateError: true} at connection time so that
// unique-constraint violations arrive as gorm.ErrDuplicatedKey regardless of
// the underlying driver.
type userPostgres struct {
	db *gorm.DB
}

// Compile-time check that userPostgres implements UserDirectory.
var _ usecase.UserDirectory = (*userPostgres)(nil)

// NewUserPostgres creates a userPostgres over the given gorm.DB connection.
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create inserts the user. A duplicate email or name returns
// usecase.ErrAlreadyExists; both columns carry unique indexes.
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by email, exactly as persisted. Soft-deleted
// rows are excluded by GORM's DeletedAt handling. A miss returns
// usecase.ErrUserNotFound.
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
