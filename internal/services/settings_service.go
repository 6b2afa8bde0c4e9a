package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
)

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	defaultDays  int
}

// NewSettingsService creates a new SettingsService. defaultDays applies until an
// admin saves settings.
func NewSettingsService(settingsRepo repositories.SettingsRepository, defaultDays int) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		defaultDays:  defaultDays,
	}
}

// GetSettings retrieves the current promotion settings
func (s *settingsService) GetSettings(ctx context.Context) (*models.PromoSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, repositories.ErrNotFound) {
		return &models.PromoSettings{ValidityDays: s.defaultDays}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.ValidityDays <= 0 {
		settings.ValidityDays = s.defaultDays
	}
	return settings, nil
}

func (s *settingsService) ValidityDays(ctx context.Context) (int, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return 0, err
	}
	return settings.ValidityDays, nil
}

// UpdateSettings updates the validity window
func (s *settingsService) UpdateSettings(ctx context.Context, settings *models.PromoSettings, updatedBy string, now time.Time) (*models.PromoSettings, error) {
	if settings.ValidityDays < 1 {
		return nil, fmt.Errorf("validity days must be at least 1, got %d", settings.ValidityDays)
	}
	settings.UpdatedAt = now
	settings.UpdatedBy = updatedBy
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}
