package domain

import "errors"

// Sentinel errors classified by the HTTP error handler. Call sites wrap them
// with %w to add operation-specific detail without losing the class.
var (
	// ErrForbidden: the caller's capabilities do not allow the action.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput: malformed or missing required input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIDConflict: create was called with an already-assigned identity.
	ErrIDConflict = errors.New("cannot create an existing user")
	// ErrUserNotFound: the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrLoginExists / ErrEmailExists: uniqueness violations reported by the
	// store, surfaced with their original kind.
	ErrLoginExists = errors.New("login already exists")
	ErrEmailExists = errors.New("email already exists")
	// ErrPersistence: the store reported an unrecoverable failure.
	ErrPersistence = errors.New("persistence failure")
	// ErrInvalidCredentials: login with a bad username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
