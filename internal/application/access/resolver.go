// Package access implements permission resolution and role assignment
// management on top of the access domain entities.
package access

import (
	"context"
	"fmt"
	"sort"
	"time"

	"rentra/internal/domain/access"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

// NoAssignmentLevel is the privilege level reported when a user has no
// active assignments in scope. Lower levels are more privileged, so the
// sentinel sorts below every real role.
const NoAssignmentLevel = 1<<31 - 1

// Resolution is the effective grant set for one (user, organization)
// pair: the union of permission codes from all active in-scope role
// assignments and the minimum role level among them.
type Resolution struct {
	Codes map[string]bool `json:"codes"`
	Level int             `json:"level"`
}

// Has reports whether the resolution contains the permission code.
func (r *Resolution) Has(code string) bool {
	return r.Codes[code]
}

// CodeList returns the granted codes in sorted order.
func (r *Resolution) CodeList() []string {
	codes := make([]string, 0, len(r.Codes))
	for code := range r.Codes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ResolutionCache stores resolved grant sets per (user, organization)
// with a short TTL. Invalidation drops every organization scope for the
// user at once so a grant change can never be observed stale beyond the
// store round trip.
type ResolutionCache interface {
	Get(ctx context.Context, userID uint, organizationID *uint) (*Resolution, bool)
	Set(ctx context.Context, userID uint, organizationID *uint, res *Resolution)
	InvalidateUser(ctx context.Context, userID uint) error
}

// Resolver computes effective permissions for a principal.
type Resolver struct {
	assignments access.AssignmentRepository
	roles       access.RoleRepository
	permissions access.PermissionRepository
	cache       ResolutionCache
	logger      logger.Interface
}

// NewResolver creates a permission resolver. The cache may be nil, in
// which case every resolution hits the repositories.
func NewResolver(
	assignments access.AssignmentRepository,
	roles access.RoleRepository,
	permissions access.PermissionRepository,
	cache ResolutionCache,
	logger logger.Interface,
) *Resolver {
	return &Resolver{
		assignments: assignments,
		roles:       roles,
		permissions: permissions,
		cache:       cache,
		logger:      logger,
	}
}

// Resolve computes the effective permission codes and minimum role level
// for the user within the given organization scope. Expired assignments
// are discarded; assignments scoped to another organization are
// discarded; global assignments always apply. An empty set is a valid
// result.
func (r *Resolver) Resolve(ctx context.Context, userID uint, organizationID *uint) (*Resolution, error) {
	if userID == 0 {
		return nil, errors.NewFieldValidationError("user_id", "is required")
	}

	if r.cache != nil {
		if res, ok := r.cache.Get(ctx, userID, organizationID); ok {
			return res, nil
		}
	}

	res, err := r.resolveUncached(ctx, userID, organizationID)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Set(ctx, userID, organizationID, res)
	}
	return res, nil
}

func (r *Resolver) resolveUncached(ctx context.Context, userID uint, organizationID *uint) (*Resolution, error) {
	assignments, err := r.assignments.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list role assignments: %w", err)
	}

	now := time.Now().UTC()
	roleIDs := make([]uint, 0, len(assignments))
	seen := make(map[uint]bool)
	for _, a := range assignments {
		if !a.Active(now) || !a.AppliesTo(organizationID) {
			continue
		}
		if !seen[a.RoleID()] {
			seen[a.RoleID()] = true
			roleIDs = append(roleIDs, a.RoleID())
		}
	}

	res := &Resolution{Codes: make(map[string]bool), Level: NoAssignmentLevel}
	if len(roleIDs) == 0 {
		return res, nil
	}

	permsByRole, err := r.permissions.ListByRoleIDs(ctx, roleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}

	for _, roleID := range roleIDs {
		role, err := r.roles.GetByID(ctx, roleID)
		if err != nil {
			return nil, fmt.Errorf("failed to get role %d: %w", roleID, err)
		}
		if role == nil {
			r.logger.Warnw("role assignment references missing role", "role_id", roleID, "user_id", userID)
			continue
		}
		if role.RoleLevel() < res.Level {
			res.Level = role.RoleLevel()
		}
		for _, p := range permsByRole[roleID] {
			res.Codes[p.Code()] = true
		}
	}
	return res, nil
}

// MaxPrivilegeLevel returns the minimum role level among the user's
// active in-scope assignments. Lower is more privileged.
func (r *Resolver) MaxPrivilegeLevel(ctx context.Context, userID uint, organizationID *uint) (int, error) {
	res, err := r.Resolve(ctx, userID, organizationID)
	if err != nil {
		return 0, err
	}
	return res.Level, nil
}

// Check fails with a permission denied error unless the user holds the
// required code. It runs before any state mutation is attempted.
func (r *Resolver) Check(ctx context.Context, userID uint, organizationID *uint, code string) error {
	res, err := r.Resolve(ctx, userID, organizationID)
	if err != nil {
		return err
	}
	if !res.Has(code) {
		return errors.NewPermissionDeniedError(code)
	}
	return nil
}

// CheckLevel enforces the required code plus a privilege level
// threshold: the user's level must be at or below maxLevel.
func (r *Resolver) CheckLevel(ctx context.Context, userID uint, organizationID *uint, code string, maxLevel int) error {
	res, err := r.Resolve(ctx, userID, organizationID)
	if err != nil {
		return err
	}
	if !res.Has(code) {
		return errors.NewPermissionDeniedError(code)
	}
	if res.Level > maxLevel {
		return errors.NewPermissionDeniedError(fmt.Sprintf("%s at level <= %d", code, maxLevel))
	}
	return nil
}
