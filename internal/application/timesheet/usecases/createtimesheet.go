// Package usecases implements the daily timesheet workflow: drafting,
// submission, supervisor verification, and client approval.
package usecases

import (
	"context"
	"fmt"
	"time"

	"rentra/internal/domain/rental"
	rentalvo "rentra/internal/domain/rental/valueobjects"
	"rentra/internal/domain/timesheet"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

type CreateTimesheetCommand struct {
	RentalID uint
	WorkDate time.Time
}

type CreateTimesheetUseCase struct {
	timesheetRepo timesheet.Repository
	rentalRepo    rental.Repository
	logger        logger.Interface
}

func NewCreateTimesheetUseCase(
	timesheetRepo timesheet.Repository,
	rentalRepo rental.Repository,
	logger logger.Interface,
) *CreateTimesheetUseCase {
	return &CreateTimesheetUseCase{
		timesheetRepo: timesheetRepo,
		rentalRepo:    rentalRepo,
		logger:        logger,
	}
}

// Execute opens a draft timesheet for one work date of a dispatched
// rental. One sheet per rental per day.
func (uc *CreateTimesheetUseCase) Execute(ctx context.Context, cmd CreateTimesheetCommand) (*timesheet.Timesheet, error) {
	r, err := uc.rentalRepo.GetByID(ctx, cmd.RentalID)
	if err != nil {
		uc.logger.Errorw("failed to get rental", "error", err, "rental_id", cmd.RentalID)
		return nil, fmt.Errorf("failed to get rental: %w", err)
	}
	if r == nil {
		return nil, errors.NewEntityNotFoundError("rental", cmd.RentalID)
	}
	if r.Status() != rentalvo.StatusDispatched {
		return nil, errors.NewStateConflictError(r.Status().String(), "record timesheet")
	}

	existing, err := uc.timesheetRepo.GetByRentalAndDate(ctx, cmd.RentalID, cmd.WorkDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing timesheet: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("timesheet already exists for this work date",
			fmt.Sprintf("rental_id=%d work_date=%s", cmd.RentalID, cmd.WorkDate.Format("2006-01-02")))
	}

	ts, err := timesheet.NewTimesheet(cmd.RentalID, cmd.WorkDate)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.timesheetRepo.Create(ctx, ts); err != nil {
		uc.logger.Errorw("failed to create timesheet", "error", err, "rental_id", cmd.RentalID)
		return nil, fmt.Errorf("failed to create timesheet: %w", err)
	}

	uc.logger.Infow("timesheet drafted",
		"rental_id", cmd.RentalID,
		"work_date", cmd.WorkDate.Format("2006-01-02"),
	)
	return ts, nil
}
