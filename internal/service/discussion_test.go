package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manjunathhanchinal/BackendAppStore/internal/domain"
	"github.com/manjunathhanchinal/BackendAppStore/internal/repository"
	"github.com/manjunathhanchinal/BackendAppStore/internal/repository/mocks"
	"github.com/manjunathhanchinal/BackendAppStore/internal/service"
)

func TestDiscussionService_Add_Success(t *testing.T) {
	ctx := context.Background()
	app := &domain.App{ID: 1, OwnerID: 9, Visibility: domain.VisibilityPublic}

	mockAppRepo := new(mocks.AppRepository)
	mockCommentRepo := new(mocks.CommentRepository)
	mockAppRepo.On("FindByID", ctx, uint(1)).Return(app, nil).Once()
	mockCommentRepo.On("Save", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
		assert.Equal(t, strangerCaller.UserID, c.AuthorID, "caller becomes the author")
		assert.Equal(t, uint(1), c.AppID)
		assert.Equal(t, "nice app", c.Comment)
		return true
	})).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Comment).ID = 100 }).
		Return(nil).Once()

	discussion := service.NewDiscussionService(mockCommentRepo, mockAppRepo)
	comment, err := discussion.Add(ctx, 1, "nice app", strangerCaller)

	require.NoError(t, err)
	assert.Equal(t, uint(100), comment.ID)
	mockAppRepo.AssertExpectations(t)
	mockCommentRepo.AssertExpectations(t)
}

func TestDiscussionService_Add_AppMissing(t *testing.T) {
	ctx := context.Background()
	mockAppRepo := new(mocks.AppRepository)
	mockCommentRepo := new(mocks.CommentRepository)
	mockAppRepo.On("FindByID", ctx, uint(404)).Return(nil, repository.ErrAppNotFound).Once()

	discussion := service.NewDiscussionService(mockCommentRepo, mockAppRepo)
	_, err := discussion.Add(ctx, 404, "orphan", strangerCaller)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrAppNotFound),
		"a comment must never reference a missing app")
	mockCommentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDiscussionService_Add_PrivateAppForbidden(t *testing.T) {
	ctx := context.Background()
	private := &domain.App{ID: 2, OwnerID: ownerCaller.UserID, Visibility: domain.VisibilityPrivate}

	mockAppRepo := new(mocks.AppRepository)
	mockCommentRepo := new(mocks.CommentRepository)
	mockAppRepo.On("FindByID", ctx, uint(2)).Return(private, nil).Once()

	discussion := service.NewDiscussionService(mockCommentRepo, mockAppRepo)
	_, err := discussion.Add(ctx, 2, "sneaky", strangerCaller)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrForbidden))
	mockCommentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDiscussionService_Add_EmptyText(t *testing.T) {
	mockAppRepo := new(mocks.AppRepository)
	mockCommentRepo := new(mocks.CommentRepository)

	discussion := service.NewDiscussionService(mockCommentRepo, mockAppRepo)
	_, err := discussion.Add(context.Background(), 1, "", strangerCaller)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrValidation))
	mockAppRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestDiscussionService_ListByApp_ExpandsAuthors(t *testing.T) {
	ctx := context.Background()
	app := &domain.App{ID: 3, OwnerID: 9, Visibility: domain.VisibilityPublic}
	comments := []domain.Comment{
		{ID: 1, Comment: "first", AppID: 3, AuthorID: 5, Author: domain.User{ID: 5, Username: "alice"}},
		{ID: 2, Comment: "second", AppID: 3, AuthorID: 6, Author: domain.User{ID: 6, Username: "bob"}},
	}

	mockAppRepo := new(mocks.AppRepository)
	mockCommentRepo := new(mocks.CommentRepository)
	mockAppRepo.On("FindByID", ctx, uint(3)).Return(app, nil).Once()
	mockCommentRepo.On("FindByApp", ctx, uint(3)).Return(comments, nil).Once()

	discussion := service.NewDiscussionService(mockCommentRepo, mockAppRepo)
	views, err := discussion.ListByApp(ctx, 3, strangerCaller)

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "alice", views[0].Author.Username)
	assert.Equal(t, "bob", views[1].Author.Username)
}

func TestDiscussionService_ListByApp_PrivateAppForbidden(t *testing.T) {
	ctx := context.Background()
	private := &domain.App{ID: 4, OwnerID: ownerCaller.UserID, Visibility: domain.VisibilityPrivate}

	mockAppRepo := new(mocks.AppRepository)
	mockCommentRepo := new(mocks.CommentRepository)
	mockAppRepo.On("FindByID", ctx, uint(4)).Return(private, nil)

	discussion := service.NewDiscussionService(mockCommentRepo, mockAppRepo)

	_, err := discussion.ListByApp(ctx, 4, strangerCaller)
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrForbidden),
		"comments on a private app must be as private as the app")
	mockCommentRepo.AssertNotCalled(t, "FindByApp", mock.Anything, mock.Anything)

	// The owner may still read them.
	mockCommentRepo.On("FindByApp", ctx, uint(4)).Return([]domain.Comment{}, nil).Once()
	views, err := discussion.ListByApp(ctx, 4, ownerCaller)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDiscussionService_DeleteByID_TwiceGivesNotFound(t *testing.T) {
	ctx := context.Background()
	mockAppRepo := new(mocks.AppRepository)
	mockCommentRepo := new(mocks.CommentRepository)
	mockCommentRepo.On("DeleteByID", ctx, uint(7)).Return(nil).Once()
	mockCommentRepo.On("DeleteByID", ctx, uint(7)).Return(repository.ErrCommentNotFound).Once()

	discussion := service.NewDiscussionService(mockCommentRepo, mockAppRepo)

	require.NoError(t, discussion.DeleteByID(ctx, 7, adminCaller))

	err := discussion.DeleteByID(ctx, 7, adminCaller)
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrCommentNotFound))
	mockCommentRepo.AssertExpectations(t)
}
