// Package access holds the role, permission, and role-assignment
// entities used for permission resolution. Lower role levels denote
// higher privilege.
package access

import (
	"fmt"
	"time"
)

// Role is a named bundle of permissions with a privilege level. System
// roles are seeded at migration time and cannot be deleted.
type Role struct {
	id        uint
	code      string
	name      string
	roleLevel int
	isSystem  bool
	createdAt time.Time
	updatedAt time.Time
}

// NewRole creates a non-system role.
func NewRole(code, name string, roleLevel int) (*Role, error) {
	if code == "" {
		return nil, fmt.Errorf("role code is required")
	}
	if name == "" {
		return nil, fmt.Errorf("role name is required")
	}
	if roleLevel < 0 {
		return nil, fmt.Errorf("role level cannot be negative")
	}

	now := time.Now().UTC()
	return &Role{
		code:      code,
		name:      name,
		roleLevel: roleLevel,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructRole rebuilds a role from persistence.
func ReconstructRole(id uint, code, name string, roleLevel int, isSystem bool, createdAt, updatedAt time.Time) (*Role, error) {
	if id == 0 {
		return nil, fmt.Errorf("role ID cannot be zero")
	}
	if code == "" {
		return nil, fmt.Errorf("role code is required")
	}

	return &Role{
		id:        id,
		code:      code,
		name:      name,
		roleLevel: roleLevel,
		isSystem:  isSystem,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (r *Role) ID() uint             { return r.id }
func (r *Role) Code() string         { return r.code }
func (r *Role) Name() string         { return r.name }
func (r *Role) RoleLevel() int       { return r.roleLevel }
func (r *Role) IsSystem() bool       { return r.isSystem }
func (r *Role) CreatedAt() time.Time { return r.createdAt }
func (r *Role) UpdatedAt() time.Time { return r.updatedAt }

// SetID sets the role ID (only for persistence layer use)
func (r *Role) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("role ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("role ID cannot be zero")
	}
	r.id = id
	return nil
}
