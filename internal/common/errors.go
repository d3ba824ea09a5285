// Package common defines shared helpers and sentinel errors used across
// the application layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already exists")

	// Validation errors, surfaced as form-field messages and never fatal.
	ErrEmptyField       = errors.New("field must not be empty")
	ErrWeakPassword     = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("password does not match")

	// Auth errors.
	ErrInvalidCredential = errors.New("incorrect password")
	ErrNoSession         = errors.New("not logged in")
)
