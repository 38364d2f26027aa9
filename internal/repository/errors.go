package repository

import "errors"

var (
	// ErrNotFound is returned by mutating operations that matched no row.
	// Single-row lookups return (nil, nil) instead.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateUsername is returned when a unique constraint on
	// users.username is violated.
	ErrDuplicateUsername = errors.New("username already taken")
)
