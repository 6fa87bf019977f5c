package repository

import (
	"context"
	"fmt"
	"time"

	apperrors "pulse-crm-backend/internal/errors"
	"pulse-crm-backend/internal/store"
	"pulse-crm-backend/internal/store/models"

	"github.com/google/uuid"
)

// OrganizationRepository handles store operations for organizations
type OrganizationRepository struct {
	store *store.Store
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(s *store.Store) *OrganizationRepository {
	return &OrganizationRepository{store: s}
}

// NewOrganizationRecord builds an organization record with a fresh random id.
// The id is opaque and never derived from the name, so distinct tenants can
// never collide on the key level.
func NewOrganizationRecord(name string) *models.Organization {
	orgID := uuid.NewString()
	key := store.OrgKey(orgID)
	return &models.Organization{
		PK:        key.PK,
		SK:        key.SK,
		Type:      models.TypeOrganization,
		ID:        orgID,
		Name:      name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Create writes a new organization conditioned on non-existence. The
// condition, not the randomness of the id, is the correctness guarantee.
func (r *OrganizationRepository) Create(ctx context.Context, name string) (*models.Organization, error) {
	org := NewOrganizationRecord(name)
	if err := r.store.PutIfAbsent(ctx, org, "PK"); err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}
	return org, nil
}

// Exists checks whether an organization exists. Used to validate join
// requests before any writes occur.
func (r *OrganizationRepository) Exists(ctx context.Context, orgID string) (bool, error) {
	var org models.Organization
	found, err := r.store.Get(ctx, store.OrgKey(orgID), &org)
	if err != nil {
		return false, fmt.Errorf("check organization: %w", err)
	}
	return found, nil
}

// Get retrieves an organization's metadata record
func (r *OrganizationRepository) Get(ctx context.Context, orgID string) (*models.Organization, error) {
	var org models.Organization
	found, err := r.store.Get(ctx, store.OrgKey(orgID), &org)
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	if !found {
		return nil, apperrors.ErrOrganizationNotFound
	}
	return &org, nil
}
