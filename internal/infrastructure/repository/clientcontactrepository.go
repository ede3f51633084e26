package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"rentra/internal/domain/timesheet"
	"rentra/internal/infrastructure/persistence/mappers"
	"rentra/internal/infrastructure/persistence/models"
	"rentra/internal/shared/db"
)

type ClientContactRepositoryImpl struct {
	db *gorm.DB
}

func NewClientContactRepository(gdb *gorm.DB) timesheet.ClientContactRepository {
	return &ClientContactRepositoryImpl{db: gdb}
}

func (r *ClientContactRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func (r *ClientContactRepositoryImpl) GetByID(ctx context.Context, id uint) (*timesheet.ClientContact, error) {
	var model models.ClientContactModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get client contact: %w", err)
	}
	return mappers.ClientContactToDomain(&model)
}

func (r *ClientContactRepositoryImpl) GetPrimaryByClientID(ctx context.Context, clientID uint) (*timesheet.ClientContact, error) {
	var model models.ClientContactModel
	err := r.conn(ctx).
		Where("client_id = ? AND is_primary = ? AND is_active = ?", clientID, true, true).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get primary client contact: %w", err)
	}
	return mappers.ClientContactToDomain(&model)
}

func (r *ClientContactRepositoryImpl) ListByClientID(ctx context.Context, clientID uint) ([]*timesheet.ClientContact, error) {
	var contactModels []*models.ClientContactModel
	if err := r.conn(ctx).Where("client_id = ?", clientID).Order("is_primary DESC, name ASC").Find(&contactModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list client contacts: %w", err)
	}

	contacts := make([]*timesheet.ClientContact, 0, len(contactModels))
	for _, model := range contactModels {
		contact, err := mappers.ClientContactToDomain(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map client contact %d: %w", model.ID, err)
		}
		contacts = append(contacts, contact)
	}
	return contacts, nil
}
