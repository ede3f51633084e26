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

type AssignmentRepositoryImpl struct {
	db *gorm.DB
}

func NewAssignmentRepository(gdb *gorm.DB) access.AssignmentRepository {
	return &AssignmentRepositoryImpl{db: gdb}
}

func (r *AssignmentRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func assignmentToDomain(model *models.RoleAssignmentModel) (*access.RoleAssignment, error) {
	return access.ReconstructRoleAssignment(
		model.ID,
		model.UserID,
		model.RoleID,
		model.OrganizationID,
		model.GrantedBy,
		model.GrantedAt,
		model.ExpiresAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (r *AssignmentRepositoryImpl) Create(ctx context.Context, assignment *access.RoleAssignment) error {
	model := &models.RoleAssignmentModel{
		UserID:         assignment.UserID(),
		RoleID:         assignment.RoleID(),
		OrganizationID: assignment.OrganizationID(),
		GrantedBy:      assignment.GrantedBy(),
		GrantedAt:      assignment.GrantedAt(),
		ExpiresAt:      assignment.ExpiresAt(),
	}

	if err := r.conn(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create role assignment: %w", err)
	}

	return assignment.SetID(model.ID)
}

func (r *AssignmentRepositoryImpl) GetByID(ctx context.Context, id uint) (*access.RoleAssignment, error) {
	var model models.RoleAssignmentModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role assignment: %w", err)
	}
	return assignmentToDomain(&model)
}

func (r *AssignmentRepositoryImpl) ListByUserID(ctx context.Context, userID uint) ([]*access.RoleAssignment, error) {
	var assignmentModels []*models.RoleAssignmentModel
	if err := r.conn(ctx).Where("user_id = ?", userID).Find(&assignmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list role assignments: %w", err)
	}

	assignments := make([]*access.RoleAssignment, 0, len(assignmentModels))
	for _, model := range assignmentModels {
		assignment, err := assignmentToDomain(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map role assignment %d: %w", model.ID, err)
		}
		assignments = append(assignments, assignment)
	}
	return assignments, nil
}

func (r *AssignmentRepositoryImpl) Update(ctx context.Context, assignment *access.RoleAssignment) error {
	result := r.conn(ctx).Model(&models.RoleAssignmentModel{}).
		Where("id = ?", assignment.ID()).
		Updates(map[string]any{
			"expires_at": assignment.ExpiresAt(),
			"updated_at": assignment.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update role assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewEntityNotFoundError("role assignment", assignment.ID())
	}
	return nil
}

func (r *AssignmentRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.conn(ctx).Delete(&models.RoleAssignmentModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete role assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewEntityNotFoundError("role assignment", id)
	}
	return nil
}
