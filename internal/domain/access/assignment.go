package access

import (
	"fmt"
	"time"
)

// RoleAssignment grants a role to a user, optionally scoped to one
// organization. A nil organization ID means the grant applies globally.
// The assignment is active until its expiry passes; a nil expiry never
// expires.
type RoleAssignment struct {
	id             uint
	userID         uint
	roleID         uint
	organizationID *uint
	grantedBy      uint
	grantedAt      time.Time
	expiresAt      *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// NewRoleAssignment grants roleID to userID, recording who granted it.
func NewRoleAssignment(userID, roleID, grantedBy uint, organizationID *uint, expiresAt *time.Time) (*RoleAssignment, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if roleID == 0 {
		return nil, fmt.Errorf("role ID is required")
	}
	if grantedBy == 0 {
		return nil, fmt.Errorf("granter ID is required")
	}

	now := time.Now().UTC()
	if expiresAt != nil && !expiresAt.After(now) {
		return nil, fmt.Errorf("expiry must be in the future")
	}

	return &RoleAssignment{
		userID:         userID,
		roleID:         roleID,
		organizationID: organizationID,
		grantedBy:      grantedBy,
		grantedAt:      now,
		expiresAt:      expiresAt,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructRoleAssignment rebuilds an assignment from persistence.
func ReconstructRoleAssignment(
	id, userID, roleID uint,
	organizationID *uint,
	grantedBy uint,
	grantedAt time.Time,
	expiresAt *time.Time,
	createdAt, updatedAt time.Time,
) (*RoleAssignment, error) {
	if id == 0 {
		return nil, fmt.Errorf("assignment ID cannot be zero")
	}
	if userID == 0 || roleID == 0 {
		return nil, fmt.Errorf("user ID and role ID are required")
	}

	return &RoleAssignment{
		id:             id,
		userID:         userID,
		roleID:         roleID,
		organizationID: organizationID,
		grantedBy:      grantedBy,
		grantedAt:      grantedAt,
		expiresAt:      expiresAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (a *RoleAssignment) ID() uint              { return a.id }
func (a *RoleAssignment) UserID() uint          { return a.userID }
func (a *RoleAssignment) RoleID() uint          { return a.roleID }
func (a *RoleAssignment) OrganizationID() *uint { return a.organizationID }
func (a *RoleAssignment) GrantedBy() uint       { return a.grantedBy }
func (a *RoleAssignment) GrantedAt() time.Time  { return a.grantedAt }
func (a *RoleAssignment) ExpiresAt() *time.Time { return a.expiresAt }
func (a *RoleAssignment) CreatedAt() time.Time  { return a.createdAt }
func (a *RoleAssignment) UpdatedAt() time.Time  { return a.updatedAt }

// SetID sets the assignment ID (only for persistence layer use)
func (a *RoleAssignment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("assignment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("assignment ID cannot be zero")
	}
	a.id = id
	return nil
}

// Active reports whether the assignment is in force at the given time.
func (a *RoleAssignment) Active(now time.Time) bool {
	return a.expiresAt == nil || a.expiresAt.After(now)
}

// AppliesTo reports whether the assignment covers the requested
// organization scope. Global assignments (nil organization) apply
// everywhere; scoped assignments apply only to their own organization.
func (a *RoleAssignment) AppliesTo(organizationID *uint) bool {
	if a.organizationID == nil {
		return true
	}
	if organizationID == nil {
		return false
	}
	return *a.organizationID == *organizationID
}

// Extend moves the expiry forward, or clears it to make the grant
// permanent.
func (a *RoleAssignment) Extend(expiresAt *time.Time) error {
	if expiresAt != nil && !expiresAt.After(time.Now().UTC()) {
		return fmt.Errorf("expiry must be in the future")
	}
	a.expiresAt = expiresAt
	a.updatedAt = time.Now().UTC()
	return nil
}
