// Package repository contains the GORM implementations of the domain
// persistence contracts.
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"rentra/internal/domain/rental"
	"rentra/internal/infrastructure/persistence/mappers"
	"rentra/internal/infrastructure/persistence/models"
	"rentra/internal/shared/constants"
	"rentra/internal/shared/db"
	"rentra/internal/shared/errors"
)

type RentalRepositoryImpl struct {
	db *gorm.DB
}

func NewRentalRepository(gdb *gorm.DB) rental.Repository {
	return &RentalRepositoryImpl{db: gdb}
}

func (r *RentalRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func (r *RentalRepositoryImpl) Create(ctx context.Context, entity *rental.Rental) error {
	model, err := mappers.RentalToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map rental: %w", err)
	}
	model.ID = 0

	if err := r.conn(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("rental number already exists", entity.RentalNumber())
		}
		return fmt.Errorf("failed to create rental: %w", err)
	}

	return entity.SetID(model.ID)
}

func (r *RentalRepositoryImpl) GetByID(ctx context.Context, id uint) (*rental.Rental, error) {
	var model models.RentalModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rental: %w", err)
	}
	return mappers.RentalToDomain(&model)
}

func (r *RentalRepositoryImpl) GetByRentalNumber(ctx context.Context, number string) (*rental.Rental, error) {
	var model models.RentalModel
	if err := r.conn(ctx).Where("rental_number = ?", number).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rental by number: %w", err)
	}
	return mappers.RentalToDomain(&model)
}

// Update persists the aggregate guarded by the version column. The
// domain increments the version on every mutation, so the row must
// still hold the previous version; zero affected rows means another
// writer got there first.
func (r *RentalRepositoryImpl) Update(ctx context.Context, entity *rental.Rental) error {
	model, err := mappers.RentalToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map rental: %w", err)
	}

	result := r.conn(ctx).Model(&models.RentalModel{}).
		Where("id = ? AND version = ?", entity.ID(), entity.Version()-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update rental: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewConcurrencyConflictError("rental", entity.ID())
	}
	return nil
}

func (r *RentalRepositoryImpl) List(ctx context.Context, filter rental.Filter) ([]*rental.Rental, int64, error) {
	query := r.conn(ctx).Model(&models.RentalModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.AssetID != nil {
		query = query.Where("asset_id = ?", *filter.AssetID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count rentals: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	var rentalModels []*models.RentalModel
	if err := query.Scopes(db.Paginate(page, pageSize)).Order("created_at DESC").Find(&rentalModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list rentals: %w", err)
	}

	rentals := make([]*rental.Rental, 0, len(rentalModels))
	for _, model := range rentalModels {
		entity, err := mappers.RentalToDomain(model)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to map rental %d: %w", model.ID, err)
		}
		rentals = append(rentals, entity)
	}
	return rentals, total, nil
}
