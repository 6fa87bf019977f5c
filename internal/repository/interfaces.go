package repository

import (
	"context"

	"pulse-crm-backend/internal/store/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// OrganizationRepositoryInterface defines the interface for organization repository operations
type OrganizationRepositoryInterface interface {
	Create(ctx context.Context, name string) (*models.Organization, error)
	Exists(ctx context.Context, orgID string) (bool, error)
	Get(ctx context.Context, orgID string) (*models.Organization, error)
}

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	GetByEmail(ctx context.Context, orgID, email string) (*models.User, error)
	List(ctx context.Context, orgID string) ([]models.User, error)
	Delete(ctx context.Context, orgID, email string) error
	ReleaseEmailLock(ctx context.Context, email string) error
}

// LeadRepositoryInterface defines the interface for lead repository operations
type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *models.Lead) error
	List(ctx context.Context, orgID string) ([]models.Lead, error)
	AddNote(ctx context.Context, orgID, leadID string, note models.Note) error
	UpdateStatus(ctx context.Context, orgID, leadID, status string) error
	Delete(ctx context.Context, orgID, leadID string) error
}

// SettingsRepositoryInterface defines the interface for field schema repository operations
type SettingsRepositoryInterface interface {
	Get(ctx context.Context, orgID string) ([]models.Field, error)
	Save(ctx context.Context, orgID string, fields []models.Field) error
}

// SeedRepositoryInterface defines the interface for demo data insertion
type SeedRepositoryInterface interface {
	InsertDemoData(ctx context.Context, leads []*models.Lead, users []*models.User) error
}
