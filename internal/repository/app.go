package repository

import (
	"context"

	"github.com/manjunathhanchinal/BackendAppStore/internal/domain"
)

// AppRepository defines storage and retrieval of catalog apps plus their
// download records.
type AppRepository interface {
	// Save creates the app, or updates it when the ID is already set.
	Save(ctx context.Context, app *domain.App) error

	// FindByID returns the app or ErrAppNotFound.
	FindByID(ctx context.Context, id uint) (*domain.App, error)

	// FindByName returns the app with its owner preloaded, or ErrAppNotFound.
	FindByName(ctx context.Context, name string) (*domain.App, error)

	// FindAll returns every app in the catalog.
	FindAll(ctx context.Context) ([]domain.App, error)

	// FindVisibleTo returns public apps plus the given user's own apps.
	FindVisibleTo(ctx context.Context, userID uint) ([]domain.App, error)

	// Delete removes the app by ID. Returns ErrAppNotFound when nothing
	// was deleted.
	Delete(ctx context.Context, id uint) error

	// RecordDownload increments the app's download counter and adds the
	// user to its downloader set if absent. The membership add is
	// idempotent; the counter increment is not. Returns ErrAppNotFound
	// when the app does not exist.
	RecordDownload(ctx context.Context, appID, userID uint) error

	// HasDownloaded reports whether the user is in the app's downloader set.
	HasDownloaded(ctx context.Context, appID, userID uint) (bool, error)

	// DownloadedAppIDs returns the set of app IDs the user has downloaded.
	DownloadedAppIDs(ctx context.Context, userID uint) (map[uint]bool, error)
}
