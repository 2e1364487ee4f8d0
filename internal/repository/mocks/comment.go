package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/manjunathhanchinal/BackendAppStore/internal/domain"
)

// CommentRepository is a mock of repository.CommentRepository.
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Save(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) FindByApp(ctx context.Context, appID uint) ([]domain.Comment, error) {
	args := m.Called(ctx, appID)
	comments, _ := args.Get(0).([]domain.Comment)
	return comments, args.Error(1)
}

func (m *CommentRepository) DeleteByID(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
