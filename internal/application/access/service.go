package access

import (
	"context"
	"fmt"
	"time"

	"rentra/internal/domain/access"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

// Service manages role assignments. Every mutation invalidates the
// user's cached resolutions synchronously before returning; a stale
// positive grant must not outlive the call.
type Service struct {
	assignments access.AssignmentRepository
	roles       access.RoleRepository
	cache       ResolutionCache
	logger      logger.Interface
}

// NewService creates the role assignment service.
func NewService(
	assignments access.AssignmentRepository,
	roles access.RoleRepository,
	cache ResolutionCache,
	logger logger.Interface,
) *Service {
	return &Service{
		assignments: assignments,
		roles:       roles,
		cache:       cache,
		logger:      logger,
	}
}

// AssignRoleInput carries the fields for granting a role.
type AssignRoleInput struct {
	UserID         uint       `json:"user_id" binding:"required"`
	RoleID         uint       `json:"role_id" binding:"required"`
	OrganizationID *uint      `json:"organization_id"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

// AssignRole grants a role to a user, optionally organization-scoped
// and time-bounded.
func (s *Service) AssignRole(ctx context.Context, grantedBy uint, input AssignRoleInput) (*access.RoleAssignment, error) {
	role, err := s.roles.GetByID(ctx, input.RoleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil {
		return nil, errors.NewEntityNotFoundError("role", input.RoleID)
	}

	assignment, err := access.NewRoleAssignment(input.UserID, input.RoleID, grantedBy, input.OrganizationID, input.ExpiresAt)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create role assignment: %w", err)
	}

	if err := s.invalidate(ctx, input.UserID); err != nil {
		return nil, err
	}

	s.logger.Infow("role assigned",
		"user_id", input.UserID,
		"role_code", role.Code(),
		"granted_by", grantedBy,
	)
	return assignment, nil
}

// ExtendAssignment moves an assignment's expiry, or clears it.
func (s *Service) ExtendAssignment(ctx context.Context, assignmentID uint, expiresAt *time.Time) (*access.RoleAssignment, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role assignment: %w", err)
	}
	if assignment == nil {
		return nil, errors.NewEntityNotFoundError("role assignment", assignmentID)
	}

	if err := assignment.Extend(expiresAt); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to update role assignment: %w", err)
	}

	if err := s.invalidate(ctx, assignment.UserID()); err != nil {
		return nil, err
	}
	return assignment, nil
}

// RevokeAssignment removes a role assignment.
func (s *Service) RevokeAssignment(ctx context.Context, assignmentID uint) error {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to get role assignment: %w", err)
	}
	if assignment == nil {
		return errors.NewEntityNotFoundError("role assignment", assignmentID)
	}

	if err := s.assignments.Delete(ctx, assignmentID); err != nil {
		return fmt.Errorf("failed to delete role assignment: %w", err)
	}

	if err := s.invalidate(ctx, assignment.UserID()); err != nil {
		return err
	}

	s.logger.Infow("role assignment revoked",
		"assignment_id", assignmentID,
		"user_id", assignment.UserID(),
	)
	return nil
}

// ListUserAssignments returns all assignments for a user, active or not.
func (s *Service) ListUserAssignments(ctx context.Context, userID uint) ([]*access.RoleAssignment, error) {
	return s.assignments.ListByUserID(ctx, userID)
}

// invalidate drops the user's cached resolutions. A failed invalidation
// is an error, not a log line: returning success with a possibly stale
// cache would leave a revoked grant usable.
func (s *Service) invalidate(ctx context.Context, userID uint) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to invalidate permission cache for user %d: %w", userID, err)
	}
	return nil
}
