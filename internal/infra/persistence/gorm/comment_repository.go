package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/manjunathhanchinal/BackendAppStore/internal/domain"
	"github.com/manjunathhanchinal/BackendAppStore/internal/repository"
)

// GormCommentRepository is the GORM implementation of repository.CommentRepository.
type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	if db == nil {
		panic("database connection cannot be nil for GormCommentRepository")
	}
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Save(ctx context.Context, comment *domain.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("gorm: save comment for app %d: %w", comment.AppID, err)
	}
	return nil
}

func (r *GormCommentRepository) FindByApp(ctx context.Context, appID uint) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.WithContext(ctx).Preload("Author").
		Where("app_id = ?", appID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find comments for app %d: %w", appID, err)
	}
	return comments, nil
}

func (r *GormCommentRepository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Comment{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete comment %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrCommentNotFound
	}
	return nil
}
