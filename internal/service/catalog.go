package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/manjunathhanchinal/BackendAppStore/internal/domain"
	"github.com/manjunathhanchinal/BackendAppStore/internal/policy"
	"github.com/manjunathhanchinal/BackendAppStore/internal/repository"
)

// CatalogService implements the app CRUD operations, applying the access
// policy before returning or mutating anything.
type CatalogService struct {
	appRepo repository.AppRepository
}

func NewCatalogService(appRepo repository.AppRepository) *CatalogService {
	if appRepo == nil {
		panic("AppRepository cannot be nil for CatalogService")
	}
	return &CatalogService{appRepo: appRepo}
}

// CreateAppInput carries the fields accepted on app creation.
// Name, Description, Genre and Version are required.
type CreateAppInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Version     *float64   `json:"version"`
	ReleaseDate *time.Time `json:"releaseDate"`
	Rating      float64    `json:"rating"`
	Genre       string     `json:"genre"`
	Visibility  string     `json:"visibility"`
}

// UpdateAppInput is the explicit whitelist of mutable fields. Nil means
// "leave unchanged"; anything outside this struct is rejected before it
// gets here.
type UpdateAppInput struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Version     *float64   `json:"version"`
	ReleaseDate *time.Time `json:"releaseDate"`
	Rating      *float64   `json:"rating"`
	Genre       *string    `json:"genre"`
	Visibility  *string    `json:"visibility"`
}

// Create publishes a new app owned by the caller. Rating and the download
// counter default to zero, visibility to public.
func (s *CatalogService) Create(ctx context.Context, in CreateAppInput, caller policy.Caller) (*domain.App, error) {
	logCtx := logrus.WithFields(logrus.Fields{"name": in.Name, "owner_id": caller.UserID})

	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if in.Genre == "" {
		return nil, fmt.Errorf("%w: genre is required", ErrValidation)
	}
	if in.Version == nil {
		return nil, fmt.Errorf("%w: version is required", ErrValidation)
	}
	visibility := domain.VisibilityPublic
	if in.Visibility != "" {
		visibility = domain.Visibility(in.Visibility)
		if !visibility.Valid() {
			return nil, fmt.Errorf("%w: visibility must be 'public' or 'private'", ErrValidation)
		}
	}

	app := &domain.App{
		Name:        in.Name,
		Description: in.Description,
		Version:     *in.Version,
		ReleaseDate: in.ReleaseDate,
		Rating:      in.Rating,
		Genre:       in.Genre,
		Visibility:  visibility,
		OwnerID:     caller.UserID,
	}
	if err := s.appRepo.Save(ctx, app); err != nil {
		logCtx.WithError(err).Error("Database error creating app")
		return nil, ErrInternalServer
	}

	logCtx.WithField("app_id", app.ID).Info("App created")
	return app, nil
}

// List returns the apps the caller may see: everything for admins, public
// apps plus the caller's own private ones for everybody else. Each entry
// is shaped with or without the download counter per policy.
func (s *CatalogService) List(ctx context.Context, caller policy.Caller) ([]interface{}, error) {
	var (
		apps []domain.App
		err  error
	)
	if caller.IsAdmin() {
		apps, err = s.appRepo.FindAll(ctx)
	} else {
		apps, err = s.appRepo.FindVisibleTo(ctx, caller.UserID)
	}
	if err != nil {
		logrus.WithError(err).WithField("user_id", caller.UserID).Error("Database error listing apps")
		return nil, ErrInternalServer
	}

	downloaded, err := s.appRepo.DownloadedAppIDs(ctx, caller.UserID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", caller.UserID).Error("Database error loading download set")
		return nil, ErrInternalServer
	}

	views := make([]interface{}, 0, len(apps))
	for i := range apps {
		app := &apps[i]
		views = append(views, shapeApp(app, caller, downloaded[app.ID]))
	}
	return views, nil
}

// GetByID returns one app, enforcing the visibility rule.
func (s *CatalogService) GetByID(ctx context.Context, id uint, caller policy.Caller) (interface{}, error) {
	app, err := s.findApp(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(app, caller) {
		return nil, ErrForbidden
	}
	hasDownloaded, err := s.appRepo.HasDownloaded(ctx, app.ID, caller.UserID)
	if err != nil {
		logrus.WithError(err).WithField("app_id", app.ID).Error("Database error checking download set")
		return nil, ErrInternalServer
	}
	return shapeApp(app, caller, hasDownloaded), nil
}

// GetByName returns one app by its name with the owner embedded as
// {id, username}; visibility rules are the same as GetByID.
func (s *CatalogService) GetByName(ctx context.Context, name string, caller policy.Caller) (interface{}, error) {
	app, err := s.appRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrAppNotFound) {
			return nil, ErrAppNotFound
		}
		logrus.WithError(err).WithField("name", name).Error("Database error finding app by name")
		return nil, ErrInternalServer
	}
	if !policy.CanView(app, caller) {
		return nil, ErrForbidden
	}
	hasDownloaded, err := s.appRepo.HasDownloaded(ctx, app.ID, caller.UserID)
	if err != nil {
		logrus.WithError(err).WithField("app_id", app.ID).Error("Database error checking download set")
		return nil, ErrInternalServer
	}

	owner := &OwnerView{ID: app.OwnerID, Username: app.Owner.Username}
	view := newAppView(app)
	view.Owner = owner
	if policy.CanSeeDownloadCount(caller, hasDownloaded) {
		return AppViewWithDownloads{AppView: view, DownloadCount: app.DownloadCount}, nil
	}
	return view, nil
}

// Update applies a whitelisted partial patch. Only the owner or an admin
// may update.
func (s *CatalogService) Update(ctx context.Context, id uint, patch UpdateAppInput, caller policy.Caller) (*domain.App, error) {
	logCtx := logrus.WithFields(logrus.Fields{"app_id": id, "user_id": caller.UserID})

	app, err := s.findApp(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutate(app, caller) {
		logCtx.Warn("Update rejected: caller is neither owner nor admin")
		return nil, ErrForbidden
	}
	if err := applyPatch(app, patch); err != nil {
		return nil, err
	}
	if err := s.appRepo.Save(ctx, app); err != nil {
		logCtx.WithError(err).Error("Database error updating app")
		return nil, ErrInternalServer
	}

	logCtx.Info("App updated")
	return app, nil
}

// Delete removes an app. Only the owner or an admin may delete.
func (s *CatalogService) Delete(ctx context.Context, id uint, caller policy.Caller) error {
	logCtx := logrus.WithFields(logrus.Fields{"app_id": id, "user_id": caller.UserID})

	app, err := s.findApp(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanMutate(app, caller) {
		logCtx.Warn("Delete rejected: caller is neither owner nor admin")
		return ErrForbidden
	}
	if err := s.appRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAppNotFound) {
			return ErrAppNotFound
		}
		logCtx.WithError(err).Error("Database error deleting app")
		return ErrInternalServer
	}

	logCtx.Info("App deleted")
	return nil
}

// Download records one download by the caller: the counter goes up on
// every call, the downloader set only on the first.
func (s *CatalogService) Download(ctx context.Context, id uint, caller policy.Caller) error {
	err := s.appRepo.RecordDownload(ctx, id, caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrAppNotFound) {
			return ErrAppNotFound
		}
		logrus.WithError(err).WithFields(logrus.Fields{"app_id": id, "user_id": caller.UserID}).
			Error("Database error recording download")
		return ErrInternalServer
	}
	logrus.WithFields(logrus.Fields{"app_id": id, "user_id": caller.UserID}).Info("Download recorded")
	return nil
}

// DownloadCount returns the raw counter. The routing layer restricts this
// to admins.
func (s *CatalogService) DownloadCount(ctx context.Context, id uint) (uint64, error) {
	app, err := s.findApp(ctx, id)
	if err != nil {
		return 0, err
	}
	return app.DownloadCount, nil
}

func (s *CatalogService) findApp(ctx context.Context, id uint) (*domain.App, error) {
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAppNotFound) {
			return nil, ErrAppNotFound
		}
		logrus.WithError(err).WithField("app_id", id).Error("Database error finding app")
		return nil, ErrInternalServer
	}
	return app, nil
}

func applyPatch(app *domain.App, patch UpdateAppInput) error {
	if patch.Name != nil {
		if *patch.Name == "" {
			return fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		app.Name = *patch.Name
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			return fmt.Errorf("%w: description cannot be empty", ErrValidation)
		}
		app.Description = *patch.Description
	}
	if patch.Version != nil {
		app.Version = *patch.Version
	}
	if patch.ReleaseDate != nil {
		app.ReleaseDate = patch.ReleaseDate
	}
	if patch.Rating != nil {
		app.Rating = *patch.Rating
	}
	if patch.Genre != nil {
		if *patch.Genre == "" {
			return fmt.Errorf("%w: genre cannot be empty", ErrValidation)
		}
		app.Genre = *patch.Genre
	}
	if patch.Visibility != nil {
		visibility := domain.Visibility(*patch.Visibility)
		if !visibility.Valid() {
			return fmt.Errorf("%w: visibility must be 'public' or 'private'", ErrValidation)
		}
		app.Visibility = visibility
	}
	return nil
}
