package usecases

import (
	"context"
	"fmt"
	"time"

	"rentra/internal/domain/timesheet"
	vo "rentra/internal/domain/timesheet/valueobjects"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

type ListTimesheetsQuery struct {
	RentalID *uint
	Status   *vo.TimesheetStatus
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

type ListTimesheetsUseCase struct {
	timesheetRepo timesheet.Repository
	logger        logger.Interface
}

func NewListTimesheetsUseCase(timesheetRepo timesheet.Repository, logger logger.Interface) *ListTimesheetsUseCase {
	return &ListTimesheetsUseCase{timesheetRepo: timesheetRepo, logger: logger}
}

func (uc *ListTimesheetsUseCase) Execute(ctx context.Context, q ListTimesheetsQuery) ([]*timesheet.Timesheet, int64, error) {
	if q.Status != nil && !vo.ValidStatuses[*q.Status] {
		return nil, 0, errors.NewFieldValidationError("status", fmt.Sprintf("unknown status %q", *q.Status))
	}

	sheets, total, err := uc.timesheetRepo.List(ctx, timesheet.Filter{
		RentalID: q.RentalID,
		Status:   q.Status,
		From:     q.From,
		To:       q.To,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list timesheets", "error", err)
		return nil, 0, fmt.Errorf("failed to list timesheets: %w", err)
	}
	return sheets, total, nil
}

// GetTimesheetUseCase fetches one timesheet by ID.
type GetTimesheetUseCase struct {
	timesheetRepo timesheet.Repository
	logger        logger.Interface
}

func NewGetTimesheetUseCase(timesheetRepo timesheet.Repository, logger logger.Interface) *GetTimesheetUseCase {
	return &GetTimesheetUseCase{timesheetRepo: timesheetRepo, logger: logger}
}

func (uc *GetTimesheetUseCase) Execute(ctx context.Context, timesheetID uint) (*timesheet.Timesheet, error) {
	ts, err := uc.timesheetRepo.GetByID(ctx, timesheetID)
	if err != nil {
		uc.logger.Errorw("failed to get timesheet", "error", err, "timesheet_id", timesheetID)
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}
	if ts == nil {
		return nil, errors.NewEntityNotFoundError("timesheet", timesheetID)
	}
	return ts, nil
}
