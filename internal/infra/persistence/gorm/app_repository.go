package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/manjunathhanchinal/BackendAppStore/internal/domain"
	"github.com/manjunathhanchinal/BackendAppStore/internal/repository"
)

// GormAppRepository is the GORM implementation of repository.AppRepository.
type GormAppRepository struct {
	db *gorm.DB
}

func NewGormAppRepository(db *gorm.DB) *GormAppRepository {
	if db == nil {
		panic("database connection cannot be nil for GormAppRepository")
	}
	return &GormAppRepository{db: db}
}

func (r *GormAppRepository) Save(ctx context.Context, app *domain.App) error {
	err := r.db.WithContext(ctx).Save(app).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save app (id: %d, name: %s): %w", app.ID, app.Name, err)
	}
	return nil
}

func (r *GormAppRepository) FindByID(ctx context.Context, id uint) (*domain.App, error) {
	var app domain.App
	err := r.db.WithContext(ctx).First(&app, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAppNotFound
		}
		return nil, fmt.Errorf("gorm: find app by id %d: %w", id, err)
	}
	return &app, nil
}

func (r *GormAppRepository) FindByName(ctx context.Context, name string) (*domain.App, error) {
	var app domain.App
	err := r.db.WithContext(ctx).Preload("Owner").Where("name = ?", name).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAppNotFound
		}
		return nil, fmt.Errorf("gorm: find app by name '%s': %w", name, err)
	}
	return &app, nil
}

func (r *GormAppRepository) FindAll(ctx context.Context) ([]domain.App, error) {
	var apps []domain.App
	if err := r.db.WithContext(ctx).Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all apps: %w", err)
	}
	return apps, nil
}

func (r *GormAppRepository) FindVisibleTo(ctx context.Context, userID uint) ([]domain.App, error) {
	var apps []domain.App
	err := r.db.WithContext(ctx).
		Where("visibility = ? OR owner_id = ?", domain.VisibilityPublic, userID).
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find apps visible to user %d: %w", userID, err)
	}
	return apps, nil
}

func (r *GormAppRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.App{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete app %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrAppNotFound
	}
	return nil
}

// RecordDownload bumps the counter and adds the downloader in one
// transaction. The counter update is a single atomic statement and the
// membership insert ignores conflicts on the (app_id, user_id) key, so
// repeated downloads by the same user never duplicate the set entry.
func (r *GormAppRepository) RecordDownload(ctx context.Context, appID, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.App{}).
			Where("id = ?", appID).
			UpdateColumn("download_count", gorm.Expr("download_count + 1"))
		if result.Error != nil {
			return fmt.Errorf("gorm: increment download count for app %d: %w", appID, result.Error)
		}
		if result.RowsAffected == 0 {
			return repository.ErrAppNotFound
		}

		download := domain.Download{AppID: appID, UserID: userID}
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&download).Error
		if err != nil {
			return fmt.Errorf("gorm: record downloader %d for app %d: %w", userID, appID, err)
		}
		return nil
	})
}

func (r *GormAppRepository) HasDownloaded(ctx context.Context, appID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Download{}).
		Where("app_id = ? AND user_id = ?", appID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gorm: check download of app %d by user %d: %w", appID, userID, err)
	}
	return count > 0, nil
}

func (r *GormAppRepository) DownloadedAppIDs(ctx context.Context, userID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.Download{}).
		Where("user_id = ?", userID).
		Pluck("app_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list downloaded apps for user %d: %w", userID, err)
	}
	downloaded := make(map[uint]bool, len(ids))
	for _, id := range ids {
		downloaded[id] = true
	}
	return downloaded, nil
}
