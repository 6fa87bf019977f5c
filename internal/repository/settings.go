package repository

import (
	"context"
	"fmt"

	"pulse-crm-backend/internal/store"
	"pulse-crm-backend/internal/store/models"
)

// SettingsRepository handles store operations for the per-org field schema
type SettingsRepository struct {
	store *store.Store
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(s *store.Store) *SettingsRepository {
	return &SettingsRepository{store: s}
}

// Get returns the org's field schema, or an empty list when none was saved.
func (r *SettingsRepository) Get(ctx context.Context, orgID string) ([]models.Field, error) {
	var schema models.FieldSchema
	found, err := r.store.Get(ctx, store.SettingsKey(orgID), &schema)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if !found || schema.Fields == nil {
		return []models.Field{}, nil
	}
	return schema.Fields, nil
}

// Save replaces the org's field schema in full. Saving never merges with the
// previous record.
func (r *SettingsRepository) Save(ctx context.Context, orgID string, fields []models.Field) error {
	key := store.SettingsKey(orgID)
	schema := &models.FieldSchema{
		PK:     key.PK,
		SK:     key.SK,
		Fields: fields,
	}
	if err := r.store.Put(ctx, schema); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
