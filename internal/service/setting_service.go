package service

import (
	"context"

	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/repository"
)

// SettingService handles application settings.
type SettingService struct {
	settingRepo *repository.SettingRepository
}

// NewSettingService creates a new SettingService.
func NewSettingService(settingRepo *repository.SettingRepository) *SettingService {
	return &SettingService{settingRepo: settingRepo}
}

// List retrieves all settings.
func (s *SettingService) List(ctx context.Context) ([]model.Setting, error) {
	settings, err := s.settingRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = []model.Setting{}
	}
	return settings, nil
}

// Update upserts a batch of settings.
func (s *SettingService) Update(ctx context.Context, req *model.UpdateSettingsRequest) error {
	for key, value := range req.Settings {
		if err := s.settingRepo.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}
