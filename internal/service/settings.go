package service

import (
	"context"
	"fmt"

	"pulse-crm-backend/internal/repository"
	"pulse-crm-backend/internal/store/models"
)

// SettingsService handles the per-org custom field schema.
type SettingsService struct {
	repo repository.SettingsRepositoryInterface
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo repository.SettingsRepositoryInterface) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the org's field schema, empty when none has been saved yet.
func (s *SettingsService) Get(ctx context.Context, orgID string) ([]models.Field, error) {
	fields, err := s.repo.Get(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return fields, nil
}

// Save replaces the org's field schema in full.
func (s *SettingsService) Save(ctx context.Context, orgID string, fields []models.Field) error {
	if fields == nil {
		fields = []models.Field{}
	}
	if err := s.repo.Save(ctx, orgID, fields); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
