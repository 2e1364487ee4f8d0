package repository

import (
	"context"

	"github.com/manjunathhanchinal/BackendAppStore/internal/domain"
)

// UserRepository defines storage and retrieval of user accounts.
type UserRepository interface {
	// FindByUsername looks a user up by its unique username.
	// Returns ErrUserNotFound when no such user exists.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID looks a user up by primary key.
	// Returns ErrUserNotFound when no such user exists.
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// Save creates the user, or updates it when the ID is already set.
	// Returns ErrDuplicateEntry when the username is taken.
	Save(ctx context.Context, user *domain.User) error
}
