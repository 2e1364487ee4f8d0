package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/manjunathhanchinal/BackendAppStore/internal/domain"
	"github.com/manjunathhanchinal/BackendAppStore/internal/policy"
	"github.com/manjunathhanchinal/BackendAppStore/internal/repository"
)

// DiscussionService implements comments on apps. It checks that the
// referenced app exists and that the caller may view it, so comments on
// private apps stay as private as the apps themselves.
type DiscussionService struct {
	commentRepo repository.CommentRepository
	appRepo     repository.AppRepository
}

func NewDiscussionService(commentRepo repository.CommentRepository, appRepo repository.AppRepository) *DiscussionService {
	if commentRepo == nil || appRepo == nil {
		panic("repositories cannot be nil for DiscussionService")
	}
	return &DiscussionService{commentRepo: commentRepo, appRepo: appRepo}
}

// Add creates a comment authored by the caller on an existing app.
func (s *DiscussionService) Add(ctx context.Context, appID uint, text string, caller policy.Caller) (*domain.Comment, error) {
	logCtx := logrus.WithFields(logrus.Fields{"app_id": appID, "user_id": caller.UserID})

	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}
	if appID == 0 {
		return nil, fmt.Errorf("%w: appId is required", ErrValidation)
	}

	app, err := s.loadApp(ctx, appID)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(app, caller) {
		logCtx.Warn("Comment rejected: caller may not view the app")
		return nil, ErrForbidden
	}

	comment := &domain.Comment{
		Comment:  text,
		AuthorID: caller.UserID,
		AppID:    appID,
	}
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		logCtx.WithError(err).Error("Database error saving comment")
		return nil, ErrInternalServer
	}

	logCtx.WithField("comment_id", comment.ID).Info("Comment added")
	return comment, nil
}

// ListByApp returns all comments on an app, authors expanded, subject to
// the same visibility rule as the app itself.
func (s *DiscussionService) ListByApp(ctx context.Context, appID uint, caller policy.Caller) ([]CommentView, error) {
	app, err := s.loadApp(ctx, appID)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(app, caller) {
		return nil, ErrForbidden
	}

	comments, err := s.commentRepo.FindByApp(ctx, appID)
	if err != nil {
		logrus.WithError(err).WithField("app_id", appID).Error("Database error listing comments")
		return nil, ErrInternalServer
	}

	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, newCommentView(&comments[i]))
	}
	return views, nil
}

// DeleteByID removes a comment. The routing layer restricts this to admins.
func (s *DiscussionService) DeleteByID(ctx context.Context, id uint, caller policy.Caller) error {
	logCtx := logrus.WithFields(logrus.Fields{"comment_id": id, "user_id": caller.UserID})

	if err := s.commentRepo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		logCtx.WithError(err).Error("Database error deleting comment")
		return ErrInternalServer
	}

	logCtx.Info("Comment deleted")
	return nil
}

func (s *DiscussionService) loadApp(ctx context.Context, appID uint) (*domain.App, error) {
	app, err := s.appRepo.FindByID(ctx, appID)
	if err != nil {
		if errors.Is(err, repository.ErrAppNotFound) {
			return nil, ErrAppNotFound
		}
		logrus.WithError(err).WithField("app_id", appID).Error("Database error finding app for comment")
		return nil, ErrInternalServer
	}
	return app, nil
}
