package access

import "context"

// RoleRepository is the persistence contract for roles. Get methods
// return (nil, nil) when no row matches.
type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	GetByID(ctx context.Context, id uint) (*Role, error)
	GetByCode(ctx context.Context, code string) (*Role, error)
	List(ctx context.Context) ([]*Role, error)
	Delete(ctx context.Context, id uint) error
}

// PermissionRepository is the persistence contract for permissions and
// the role-permission association.
type PermissionRepository interface {
	GetByCode(ctx context.Context, code string) (*Permission, error)
	List(ctx context.Context) ([]*Permission, error)
	ListByRoleID(ctx context.Context, roleID uint) ([]*Permission, error)
	ListByRoleIDs(ctx context.Context, roleIDs []uint) (map[uint][]*Permission, error)
}

// AssignmentRepository is the persistence contract for role assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *RoleAssignment) error
	GetByID(ctx context.Context, id uint) (*RoleAssignment, error)
	ListByUserID(ctx context.Context, userID uint) ([]*RoleAssignment, error)
	Update(ctx context.Context, assignment *RoleAssignment) error
	Delete(ctx context.Context, id uint) error
}
