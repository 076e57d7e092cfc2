package repository

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when an insert violates a uniqueness
	// constraint (duplicate user, duplicate video, duplicate entry).
	ErrConflict = errors.New("record already exists")
)
