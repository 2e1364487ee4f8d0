package repository

import "errors"

// Common storage errors shared by all repositories.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry indicates a write violated a unique constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// Resource-specific aliases, so callers can match on the resource they
// asked for without importing gorm.
var (
	ErrUserNotFound    = ErrNotFound
	ErrAppNotFound     = ErrNotFound
	ErrCommentNotFound = ErrNotFound
)
