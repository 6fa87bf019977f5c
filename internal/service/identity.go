package service

import (
	"context"
	"fmt"
	"time"

	"pulse-crm-backend/internal/auth"
	apperrors "pulse-crm-backend/internal/errors"
	"pulse-crm-backend/internal/logger"
	"pulse-crm-backend/internal/mailer"
	"pulse-crm-backend/internal/repository"
	"pulse-crm-backend/internal/store"
	"pulse-crm-backend/internal/store/models"

	"github.com/go-playground/validator/v10"
)

// IdentityService handles signup, login, and user administration for a
// tenant.
type IdentityService struct {
	orgRepo   repository.OrganizationRepositoryInterface
	userRepo  repository.UserRepositoryInterface
	auth      *auth.Service
	mailer    mailer.Mailer
	validator *validator.Validate

	// releaseEmailLockOnDelete releases the global email lock when a user
	// is removed. Off by default: the retained lock blocks re-signup with
	// that address, which mirrors the long-standing production behavior.
	releaseEmailLockOnDelete bool
}

// NewIdentityService creates a new identity service
func NewIdentityService(
	orgRepo repository.OrganizationRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	authService *auth.Service,
	m mailer.Mailer,
	validator *validator.Validate,
	releaseEmailLockOnDelete bool,
) *IdentityService {
	return &IdentityService{
		orgRepo:                  orgRepo,
		userRepo:                 userRepo,
		auth:                     authService,
		mailer:                   m,
		validator:                validator,
		releaseEmailLockOnDelete: releaseEmailLockOnDelete,
	}
}

// SignupRequest represents a signup. OrgID set means joining an existing
// organization; otherwise a new one is created with OrgName.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	OrgName  string `json:"orgName,omitempty"`
	OrgID    string `json:"orgId,omitempty"`
}

// SignupResponse represents the result of a successful signup
type SignupResponse struct {
	Message string `json:"message"`
	OrgID   string `json:"orgId"`
	Role    string `json:"role"`
}

// LoginRequest represents a login attempt against one organization
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	OrgID    string `json:"orgId" validate:"required"`
}

// UserSummary is the public view of a user, without credentials
type UserSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse carries the issued token and the user's public profile
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
	OrgID string      `json:"orgId"`
}

// Signup registers a user, either creating a new organization (caller
// becomes ADMIN) or joining an existing one (caller becomes MEMBER, after
// the org's existence is verified so no partial state is ever written).
func (s *IdentityService) Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	in := repository.RegisterInput{
		Email:        store.NormalizeEmail(req.Email),
		Name:         req.Name,
		PasswordHash: passwordHash,
	}

	if req.OrgID != "" {
		// Join path: fail fast with not-found before any write happens.
		exists, err := s.orgRepo.Exists(ctx, req.OrgID)
		if err != nil {
			return nil, fmt.Errorf("check organization: %w", err)
		}
		if !exists {
			return nil, apperrors.ErrOrganizationNotFound
		}
		in.OrgID = req.OrgID
		in.Role = models.RoleMember
	} else {
		// Create path: the org record rides in the same transaction as
		// the user and email lock.
		org := repository.NewOrganizationRecord(req.OrgName)
		in.OrgID = org.ID
		in.Role = models.RoleAdmin
		in.Org = org
	}

	user, err := s.userRepo.Register(ctx, in)
	if err != nil {
		return nil, err
	}

	// Delivery failures are logged and swallowed; the identity writes have
	// already committed and must not be affected.
	if err := s.mailer.Send(ctx, user.Email,
		mailer.WelcomeSubject(user.Role),
		mailer.WelcomeBody(user.Name, in.OrgID, user.Role, user.Email),
	); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("to", user.Email).Error("Failed to send welcome email")
	}

	return &SignupResponse{
		Message: "Account created",
		OrgID:   in.OrgID,
		Role:    user.Role,
	}, nil
}

// Login verifies credentials and issues a tenant-scoped bearer token. A
// security alert email is dispatched without being awaited so it never slows
// down or fails the login.
func (s *IdentityService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, req.OrgID, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.auth.GenerateJWT(user, req.OrgID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.mailer.Send(ctx, user.Email, mailer.LoginAlertSubject,
			mailer.LoginAlertBody(user.Name, time.Now()),
		); err != nil {
			logger.New().WithError(err).WithField("to", user.Email).Error("Failed to send login alert")
		}
	}()

	return &LoginResponse{
		Token: token,
		User: UserSummary{
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
		OrgID: req.OrgID,
	}, nil
}

// ListUsers returns the org's users without password hashes.
func (s *IdentityService) ListUsers(ctx context.Context, orgID string) ([]models.User, error) {
	users, err := s.userRepo.List(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user from the caller's organization. Only admins may
// delete, and an admin can never delete their own account.
func (s *IdentityService) DeleteUser(ctx context.Context, claims *auth.Claims, targetEmail string) error {
	if !claims.IsAdmin() {
		return apperrors.ErrAdminRequired
	}

	target := store.NormalizeEmail(targetEmail)
	if target == store.NormalizeEmail(claims.Email) {
		return apperrors.ErrSelfDelete
	}

	if err := s.userRepo.Delete(ctx, claims.OrgID, target); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if s.releaseEmailLockOnDelete {
		if err := s.userRepo.ReleaseEmailLock(ctx, target); err != nil {
			return fmt.Errorf("release email lock: %w", err)
		}
	}
	return nil
}
