package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"rentra/internal/domain/access"
	"rentra/internal/infrastructure/persistence/models"
	"rentra/internal/shared/constants"
	"rentra/internal/shared/db"
)

type PermissionRepositoryImpl struct {
	db *gorm.DB
}

func NewPermissionRepository(gdb *gorm.DB) access.PermissionRepository {
	return &PermissionRepositoryImpl{db: gdb}
}

func (r *PermissionRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func permissionToDomain(model *models.PermissionModel) (*access.Permission, error) {
	return access.ReconstructPermission(model.ID, model.Resource, model.Action, model.CreatedAt)
}

func (r *PermissionRepositoryImpl) GetByCode(ctx context.Context, code string) (*access.Permission, error) {
	resource, action, err := access.SplitCode(code)
	if err != nil {
		return nil, err
	}

	var model models.PermissionModel
	if err := r.conn(ctx).Where("resource = ? AND action = ?", resource, action).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}
	return permissionToDomain(&model)
}

func (r *PermissionRepositoryImpl) List(ctx context.Context) ([]*access.Permission, error) {
	var permissionModels []*models.PermissionModel
	if err := r.conn(ctx).Order("resource ASC, action ASC").Find(&permissionModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return mapPermissions(permissionModels)
}

func (r *PermissionRepositoryImpl) ListByRoleID(ctx context.Context, roleID uint) ([]*access.Permission, error) {
	var permissionModels []*models.PermissionModel
	err := r.conn(ctx).
		Joins(fmt.Sprintf("JOIN %s rp ON rp.permission_id = %s.id",
			constants.TableRolePermissions, constants.TablePermissions)).
		Where("rp.role_id = ?", roleID).
		Find(&permissionModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}
	return mapPermissions(permissionModels)
}

// ListByRoleIDs loads the permissions of several roles in one query,
// keyed by role ID. The resolver uses it to avoid one round trip per
// assignment.
func (r *PermissionRepositoryImpl) ListByRoleIDs(ctx context.Context, roleIDs []uint) (map[uint][]*access.Permission, error) {
	if len(roleIDs) == 0 {
		return map[uint][]*access.Permission{}, nil
	}

	type row struct {
		models.PermissionModel
		RoleID uint
	}
	var rows []row
	err := r.conn(ctx).
		Table(constants.TablePermissions).
		Select(fmt.Sprintf("%s.*, rp.role_id", constants.TablePermissions)).
		Joins(fmt.Sprintf("JOIN %s rp ON rp.permission_id = %s.id",
			constants.TableRolePermissions, constants.TablePermissions)).
		Where("rp.role_id IN ?", roleIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions for roles: %w", err)
	}

	out := make(map[uint][]*access.Permission, len(roleIDs))
	for i := range rows {
		permission, err := permissionToDomain(&rows[i].PermissionModel)
		if err != nil {
			return nil, fmt.Errorf("failed to map permission %d: %w", rows[i].ID, err)
		}
		out[rows[i].RoleID] = append(out[rows[i].RoleID], permission)
	}
	return out, nil
}

func mapPermissions(permissionModels []*models.PermissionModel) ([]*access.Permission, error) {
	permissions := make([]*access.Permission, 0, len(permissionModels))
	for _, model := range permissionModels {
		permission, err := permissionToDomain(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map permission %d: %w", model.ID, err)
		}
		permissions = append(permissions, permission)
	}
	return permissions, nil
}
