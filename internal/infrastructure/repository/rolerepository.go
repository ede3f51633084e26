package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"rentra/internal/domain/access"
	"rentra/internal/infrastructure/persistence/models"
	"rentra/internal/shared/db"
	"rentra/internal/shared/errors"
)

type RoleRepositoryImpl struct {
	db *gorm.DB
}

func NewRoleRepository(gdb *gorm.DB) access.RoleRepository {
	return &RoleRepositoryImpl{db: gdb}
}

func (r *RoleRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func roleToDomain(model *models.RoleModel) (*access.Role, error) {
	return access.ReconstructRole(
		model.ID,
		model.Code,
		model.Name,
		model.RoleLevel,
		model.IsSystem,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (r *RoleRepositoryImpl) Create(ctx context.Context, role *access.Role) error {
	model := &models.RoleModel{
		Code:      role.Code(),
		Name:      role.Name(),
		RoleLevel: role.RoleLevel(),
		IsSystem:  role.IsSystem(),
	}

	if err := r.conn(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("role code already exists", role.Code())
		}
		return fmt.Errorf("failed to create role: %w", err)
	}

	return role.SetID(model.ID)
}

func (r *RoleRepositoryImpl) GetByID(ctx context.Context, id uint) (*access.Role, error) {
	var model models.RoleModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return roleToDomain(&model)
}

func (r *RoleRepositoryImpl) GetByCode(ctx context.Context, code string) (*access.Role, error) {
	var model models.RoleModel
	if err := r.conn(ctx).Where("code = ?", code).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role by code: %w", err)
	}
	return roleToDomain(&model)
}

func (r *RoleRepositoryImpl) List(ctx context.Context) ([]*access.Role, error) {
	var roleModels []*models.RoleModel
	if err := r.conn(ctx).Order("role_level ASC, code ASC").Find(&roleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	roles := make([]*access.Role, 0, len(roleModels))
	for _, model := range roleModels {
		role, err := roleToDomain(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map role %d: %w", model.ID, err)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// Delete removes a role and its permission grants. System roles are
// refused.
func (r *RoleRepositoryImpl) Delete(ctx context.Context, id uint) error {
	var model models.RoleModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewEntityNotFoundError("role", id)
		}
		return fmt.Errorf("failed to get role: %w", err)
	}
	if model.IsSystem {
		return errors.NewConflictError("system roles cannot be deleted", model.Code)
	}

	if err := r.conn(ctx).Where("role_id = ?", id).Delete(&models.RolePermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete role permissions: %w", err)
	}
	if err := r.conn(ctx).Delete(&models.RoleModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return nil
}
