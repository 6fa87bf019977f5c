package service

import (
	"context"

	"pulse-crm-backend/internal/auth"
	"pulse-crm-backend/internal/store/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// IdentityServiceInterface defines the interface for identity operations
type IdentityServiceInterface interface {
	Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	ListUsers(ctx context.Context, orgID string) ([]models.User, error)
	DeleteUser(ctx context.Context, claims *auth.Claims, targetEmail string) error
}

// LeadServiceInterface defines the interface for lead operations
type LeadServiceInterface interface {
	Create(ctx context.Context, orgID string, input map[string]interface{}) (*models.Lead, error)
	List(ctx context.Context, orgID string) ([]models.Lead, error)
	AddNote(ctx context.Context, orgID, leadID, content string) (*models.Note, error)
	UpdateStatus(ctx context.Context, orgID, leadID, status string) error
	Delete(ctx context.Context, orgID, leadID string) error
}

// SettingsServiceInterface defines the interface for field schema operations
type SettingsServiceInterface interface {
	Get(ctx context.Context, orgID string) ([]models.Field, error)
	Save(ctx context.Context, orgID string, fields []models.Field) error
}

// SeedServiceInterface defines the interface for demo data seeding
type SeedServiceInterface interface {
	Seed(ctx context.Context, orgID string) error
}
