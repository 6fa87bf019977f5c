package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// DuplicateIdentityError represents a conditional-write conflict on a user
// or its global email lock. The store reports only that the transaction was
// cancelled, not which condition failed, so callers can never distinguish an
// org-level user conflict from a global email conflict.
type DuplicateIdentityError struct {
	Message string
}

func (e *DuplicateIdentityError) Error() string {
	return e.Message
}

// Is enables errors.Is() comparison for DuplicateIdentityError
func (e *DuplicateIdentityError) Is(target error) bool {
	_, ok := target.(*DuplicateIdentityError)
	return ok
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Is enables errors.Is() comparison for ValidationError
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Message == "" || e.Message == t.Message
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// Is enables errors.Is() comparison for AuthenticationError
func (e *AuthenticationError) Is(target error) bool {
	_, ok := target.(*AuthenticationError)
	return ok
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// Is enables errors.Is() comparison for AuthorizationError
func (e *AuthorizationError) Is(target error) bool {
	_, ok := target.(*AuthorizationError)
	return ok
}

// DependencyError represents a failure in the document store or the
// notification transport.
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s failure: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// Sentinel errors used across services and handlers.
var (
	ErrOrganizationNotFound = &NotFoundError{Entity: "organization"}
	ErrLeadNotFound         = &NotFoundError{Entity: "lead"}
	ErrUserNotFound         = &NotFoundError{Entity: "user"}

	ErrEmailAlreadyRegistered = &DuplicateIdentityError{Message: "this email is already registered"}

	ErrInvalidCredentials = &AuthenticationError{Message: "invalid credentials or organization ID"}
	ErrUnauthorized       = &AuthenticationError{Message: "unauthorized"}

	ErrAdminRequired = &AuthorizationError{Message: "access denied: only admins can delete users"}

	ErrSelfDelete = &ValidationError{Message: "you cannot delete your own account"}
)

// IsDuplicateIdentity checks if an error is a DuplicateIdentityError
func IsDuplicateIdentity(err error) bool {
	var dup *DuplicateIdentityError
	return errors.As(err, &dup)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewDependencyError creates a new DependencyError wrapping err
func NewDependencyError(dependency string, err error) error {
	return &DependencyError{Dependency: dependency, Err: err}
}
