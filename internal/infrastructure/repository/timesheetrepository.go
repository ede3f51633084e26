package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"rentra/internal/domain/timesheet"
	"rentra/internal/infrastructure/persistence/mappers"
	"rentra/internal/infrastructure/persistence/models"
	"rentra/internal/shared/constants"
	"rentra/internal/shared/db"
	"rentra/internal/shared/errors"
)

type TimesheetRepositoryImpl struct {
	db *gorm.DB
}

func NewTimesheetRepository(gdb *gorm.DB) timesheet.Repository {
	return &TimesheetRepositoryImpl{db: gdb}
}

func (r *TimesheetRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func (r *TimesheetRepositoryImpl) Create(ctx context.Context, sheet *timesheet.Timesheet) error {
	model := mappers.TimesheetToModel(sheet)
	model.ID = 0

	if err := r.conn(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("timesheet already exists for this work date",
				fmt.Sprintf("rental_id=%d work_date=%s", sheet.RentalID(), sheet.WorkDate().Format("2006-01-02")))
		}
		return fmt.Errorf("failed to create timesheet: %w", err)
	}

	return sheet.SetID(model.ID)
}

func (r *TimesheetRepositoryImpl) GetByID(ctx context.Context, id uint) (*timesheet.Timesheet, error) {
	var model models.TimesheetModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}
	return mappers.TimesheetToDomain(&model)
}

func (r *TimesheetRepositoryImpl) GetByRentalAndDate(ctx context.Context, rentalID uint, workDate time.Time) (*timesheet.Timesheet, error) {
	var model models.TimesheetModel
	err := r.conn(ctx).
		Where("rental_id = ? AND work_date = ?", rentalID, workDate.Format("2006-01-02")).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get timesheet by work date: %w", err)
	}
	return mappers.TimesheetToDomain(&model)
}

func (r *TimesheetRepositoryImpl) Update(ctx context.Context, sheet *timesheet.Timesheet) error {
	model := mappers.TimesheetToModel(sheet)

	result := r.conn(ctx).Model(&models.TimesheetModel{}).
		Where("id = ? AND version = ?", sheet.ID(), sheet.Version()-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update timesheet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewConcurrencyConflictError("timesheet", sheet.ID())
	}
	return nil
}

func (r *TimesheetRepositoryImpl) List(ctx context.Context, filter timesheet.Filter) ([]*timesheet.Timesheet, int64, error) {
	query := r.conn(ctx).Model(&models.TimesheetModel{})

	if filter.RentalID != nil {
		query = query.Where("rental_id = ?", *filter.RentalID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.From != nil {
		query = query.Where("work_date >= ?", filter.From.Format("2006-01-02"))
	}
	if filter.To != nil {
		query = query.Where("work_date <= ?", filter.To.Format("2006-01-02"))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count timesheets: %w", err)
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

	var sheetModels []*models.TimesheetModel
	if err := query.Scopes(db.Paginate(page, pageSize)).Order("work_date DESC").Find(&sheetModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list timesheets: %w", err)
	}

	sheets := make([]*timesheet.Timesheet, 0, len(sheetModels))
	for _, model := range sheetModels {
		entity, err := mappers.TimesheetToDomain(model)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to map timesheet %d: %w", model.ID, err)
		}
		sheets = append(sheets, entity)
	}
	return sheets, total, nil
}
