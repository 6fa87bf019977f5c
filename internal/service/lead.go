package service

import (
	"context"
	"fmt"
	"time"

	apperrors "pulse-crm-backend/internal/errors"
	"pulse-crm-backend/internal/repository"
	"pulse-crm-backend/internal/store"
	"pulse-crm-backend/internal/store/models"

	"github.com/google/uuid"
)

// LeadService handles business logic for leads, always scoped to the
// caller's organization.
type LeadService struct {
	repo repository.LeadRepositoryInterface
}

// NewLeadService creates a new lead service
func NewLeadService(repo repository.LeadRepositoryInterface) *LeadService {
	return &LeadService{repo: repo}
}

// isScalar reports whether v may be stored as a custom lead attribute.
// JSON decoding yields string, bool, float64, or nil for scalars.
func isScalar(v interface{}) bool {
	switch v.(type) {
	case string, bool, float64, nil:
		return true
	}
	return false
}

// Create builds a lead from the fixed schema plus any caller-supplied scalar
// extension attributes and writes it. Custom attributes are never checked
// against the org's field schema; that schema is advisory only.
func (s *LeadService) Create(ctx context.Context, orgID string, input map[string]interface{}) (*models.Lead, error) {
	key := store.LeadKey(orgID, uuid.NewString())
	lead := &models.Lead{
		PK:        key.PK,
		SK:        key.SK,
		Type:      models.TypeLead,
		ID:        key.SK[len(store.PrefixLead):],
		Notes:     []models.Note{},
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for k, v := range input {
		switch k {
		case "name":
			if s, ok := v.(string); ok {
				lead.Name = s
			}
		case "email":
			if s, ok := v.(string); ok {
				lead.Email = s
			}
		case "status":
			if s, ok := v.(string); ok {
				lead.Status = s
			}
		case "value":
			if f, ok := v.(float64); ok {
				lead.Value = f
			}
		case "id", "notes", "createdAt", "PK", "SK", "type":
			// Server-owned attributes; callers cannot set them.
		default:
			if !isScalar(v) {
				return nil, apperrors.NewValidationError(k, "custom attributes must be scalar values")
			}
			if lead.Custom == nil {
				lead.Custom = make(map[string]interface{})
			}
			lead.Custom[k] = v
		}
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// List returns the org's leads in the store's native order.
func (s *LeadService) List(ctx context.Context, orgID string) ([]models.Lead, error) {
	leads, err := s.repo.List(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

// AddNote appends a note to a lead. Notes are append-only; they are never
// edited or removed.
func (s *LeadService) AddNote(ctx context.Context, orgID, leadID, content string) (*models.Note, error) {
	if content == "" {
		return nil, apperrors.NewValidationError("content", "note content is required")
	}

	note := models.Note{
		Content:   content,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.repo.AddNote(ctx, orgID, leadID, note); err != nil {
		return nil, fmt.Errorf("add note: %w", err)
	}
	return &note, nil
}

// UpdateStatus moves a lead to a new pipeline status. Concurrent updates
// resolve last-write-wins.
func (s *LeadService) UpdateStatus(ctx context.Context, orgID, leadID, status string) error {
	if status == "" {
		return apperrors.NewValidationError("status", "status is required")
	}
	if err := s.repo.UpdateStatus(ctx, orgID, leadID, status); err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	return nil
}

// Delete removes a lead. Deleting an already-absent lead still succeeds.
func (s *LeadService) Delete(ctx context.Context, orgID, leadID string) error {
	if err := s.repo.Delete(ctx, orgID, leadID); err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return nil
}
