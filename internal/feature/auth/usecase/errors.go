// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned by the user directory when no user matches
	// the lookup. It never crosses the HTTP boundary; the validator folds it
	// into ErrInvalidCredentials.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password. The two cases are deliberately indistinguishable so callers
	// cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAlreadyExists is returned when registration hits the unique
	// constraint on email or name.
	ErrAlreadyExists = errors.New("user already exists")

	// ErrWeakPassword is returned when a registration password is shorter
	// than the minimum length.
	ErrWeakPassword = errors.New("password too short")

	// ErrInternal is returned when the directory or the token issuer fails
	// for any reason other than the typed conditions above.
	ErrInternal = errors.New("internal error")
)
