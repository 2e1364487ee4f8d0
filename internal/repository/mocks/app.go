package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/manjunathhanchinal/BackendAppStore/internal/domain"
)

// AppRepository is a mock of repository.AppRepository.
type AppRepository struct {
	mock.Mock
}

func (m *AppRepository) Save(ctx context.Context, app *domain.App) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *AppRepository) FindByID(ctx context.Context, id uint) (*domain.App, error) {
	args := m.Called(ctx, id)
	app, _ := args.Get(0).(*domain.App)
	return app, args.Error(1)
}

func (m *AppRepository) FindByName(ctx context.Context, name string) (*domain.App, error) {
	args := m.Called(ctx, name)
	app, _ := args.Get(0).(*domain.App)
	return app, args.Error(1)
}

func (m *AppRepository) FindAll(ctx context.Context) ([]domain.App, error) {
	args := m.Called(ctx)
	apps, _ := args.Get(0).([]domain.App)
	return apps, args.Error(1)
}

func (m *AppRepository) FindVisibleTo(ctx context.Context, userID uint) ([]domain.App, error) {
	args := m.Called(ctx, userID)
	apps, _ := args.Get(0).([]domain.App)
	return apps, args.Error(1)
}

func (m *AppRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AppRepository) RecordDownload(ctx context.Context, appID, userID uint) error {
	args := m.Called(ctx, appID, userID)
	return args.Error(0)
}

func (m *AppRepository) HasDownloaded(ctx context.Context, appID, userID uint) (bool, error) {
	args := m.Called(ctx, appID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *AppRepository) DownloadedAppIDs(ctx context.Context, userID uint) (map[uint]bool, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).(map[uint]bool)
	return ids, args.Error(1)
}
