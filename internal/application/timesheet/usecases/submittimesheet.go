package usecases

import (
	"context"
	"fmt"

	"rentra/internal/domain/timesheet"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

type SubmitTimesheetCommand struct {
	TimesheetID uint
	CheckerID   uint
	Notes       *string
}

type SubmitTimesheetUseCase struct {
	timesheetRepo timesheet.Repository
	logger        logger.Interface
}

func NewSubmitTimesheetUseCase(timesheetRepo timesheet.Repository, logger logger.Interface) *SubmitTimesheetUseCase {
	return &SubmitTimesheetUseCase{timesheetRepo: timesheetRepo, logger: logger}
}

// Execute sends a draft or revised sheet into verification.
func (uc *SubmitTimesheetUseCase) Execute(ctx context.Context, cmd SubmitTimesheetCommand) (*timesheet.Timesheet, error) {
	ts, err := uc.timesheetRepo.GetByID(ctx, cmd.TimesheetID)
	if err != nil {
		uc.logger.Errorw("failed to get timesheet", "error", err, "timesheet_id", cmd.TimesheetID)
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}
	if ts == nil {
		return nil, errors.NewEntityNotFoundError("timesheet", cmd.TimesheetID)
	}

	if err := ts.Submit(cmd.CheckerID, cmd.Notes); err != nil {
		return nil, err
	}

	if err := uc.timesheetRepo.Update(ctx, ts); err != nil {
		uc.logger.Errorw("failed to update timesheet", "error", err, "timesheet_id", cmd.TimesheetID)
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update timesheet: %w", err)
	}

	uc.logger.Infow("timesheet submitted",
		"timesheet_id", cmd.TimesheetID,
		"checker_id", cmd.CheckerID,
	)
	return ts, nil
}
