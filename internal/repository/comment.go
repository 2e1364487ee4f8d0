package repository

import (
	"context"

	"github.com/manjunathhanchinal/BackendAppStore/internal/domain"
)

// CommentRepository defines storage and retrieval of app comments.
type CommentRepository interface {
	// Save persists a new comment.
	Save(ctx context.Context, comment *domain.Comment) error

	// FindByApp returns all comments for an app with authors preloaded.
	FindByApp(ctx context.Context, appID uint) ([]domain.Comment, error)

	// DeleteByID removes the comment by ID. Returns ErrCommentNotFound
	// when nothing was deleted.
	DeleteByID(ctx context.Context, id uint) error
}
