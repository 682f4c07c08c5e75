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

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "in organization"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ConflictError represents a state conflict: an operation that is valid in
// general but not against the entity's current state
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ForbiddenError represents an authenticated actor lacking the required
// role or identity for an operation
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// ExpiredError represents an entity past its expiry horizon
type ExpiredError struct {
	Entity string
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("%s has expired", e.Entity)
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

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrUserNotFound         = &NotFoundError{Entity: "user"}
	ErrOrganizationNotFound = &NotFoundError{Entity: "organization"}
	ErrMembershipNotFound   = &NotFoundError{Entity: "membership"}
	ErrInvitationNotFound   = &NotFoundError{Entity: "invitation"}
	ErrProjectNotFound      = &NotFoundError{Entity: "project"}
	ErrTaskNotFound         = &NotFoundError{Entity: "task"}
)

// Already Exists Errors
var (
	ErrUserExists         = &AlreadyExistsError{Entity: "user", Context: "with this email"}
	ErrOrganizationExists = &AlreadyExistsError{Entity: "organization", Context: "with this slug"}
	ErrMembershipExists   = &AlreadyExistsError{Entity: "membership", Context: "for this user and organization"}
	ErrInvitationExists   = &AlreadyExistsError{Entity: "pending invitation", Context: "for this email in the organization"}
)

// Conflict Errors
var (
	ErrInvitationNotPending = &ConflictError{Message: "invitation is no longer pending"}
	ErrLastAdmin            = &ConflictError{Message: "organization must keep at least one admin"}
)

// Forbidden Errors
var (
	ErrNotAMember              = &ForbiddenError{Message: "user is not a member of this organization"}
	ErrAdminRequired           = &ForbiddenError{Message: "admin role required for this operation"}
	ErrInvitationEmailMismatch = &ForbiddenError{Message: "invitation was issued to a different email"}
	ErrTaskEditNotAllowed      = &ForbiddenError{Message: "task does not allow member edits"}
)

// Expired Errors
var (
	ErrInvitationExpired = &ExpiredError{Entity: "invitation"}
)

// Authentication Errors
var (
	ErrInvalidCredentials = &AuthenticationError{Message: "invalid email or password"}
	ErrAccountInactive    = &AuthenticationError{Message: "account is inactive"}
	ErrInvalidToken       = &AuthenticationError{Message: "invalid or expired token"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsConflict checks if an error is a ConflictError or an AlreadyExistsError;
// both surface as HTTP 409
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr) || IsAlreadyExists(err)
}

// IsForbidden checks if an error is a ForbiddenError
func IsForbidden(err error) bool {
	var forbiddenErr *ForbiddenError
	return errors.As(err, &forbiddenErr)
}

// IsExpired checks if an error is an ExpiredError
func IsExpired(err error) bool {
	var expiredErr *ExpiredError
	return errors.As(err, &expiredErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewForbiddenError creates a new ForbiddenError
func NewForbiddenError(message string) error {
	return &ForbiddenError{Message: message}
}
