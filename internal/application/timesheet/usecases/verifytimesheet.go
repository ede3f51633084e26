package usecases

import (
	"context"
	"fmt"

	"rentra/internal/domain/timesheet"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

type VerifyTimesheetCommand struct {
	TimesheetID uint
	VerifierID  uint
	Approve     bool
	Notes       *string
}

type VerifyTimesheetUseCase struct {
	timesheetRepo timesheet.Repository
	logger        logger.Interface
}

func NewVerifyTimesheetUseCase(timesheetRepo timesheet.Repository, logger logger.Interface) *VerifyTimesheetUseCase {
	return &VerifyTimesheetUseCase{timesheetRepo: timesheetRepo, logger: logger}
}

// Execute records the supervisor decision on a submitted sheet.
func (uc *VerifyTimesheetUseCase) Execute(ctx context.Context, cmd VerifyTimesheetCommand) (*timesheet.Timesheet, error) {
	ts, err := uc.timesheetRepo.GetByID(ctx, cmd.TimesheetID)
	if err != nil {
		uc.logger.Errorw("failed to get timesheet", "error", err, "timesheet_id", cmd.TimesheetID)
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}
	if ts == nil {
		return nil, errors.NewEntityNotFoundError("timesheet", cmd.TimesheetID)
	}

	if err := ts.Verify(cmd.VerifierID, cmd.Approve, cmd.Notes); err != nil {
		return nil, err
	}

	if err := uc.timesheetRepo.Update(ctx, ts); err != nil {
		uc.logger.Errorw("failed to update timesheet", "error", err, "timesheet_id", cmd.TimesheetID)
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update timesheet: %w", err)
	}

	uc.logger.Infow("timesheet verified",
		"timesheet_id", cmd.TimesheetID,
		"verifier_id", cmd.VerifierID,
		"approved", cmd.Approve,
		"status", ts.Status(),
	)
	return ts, nil
}

// ReviseTimesheetUseCase reopens a disputed sheet for correction.
type ReviseTimesheetUseCase struct {
	timesheetRepo timesheet.Repository
	logger        logger.Interface
}

func NewReviseTimesheetUseCase(timesheetRepo timesheet.Repository, logger logger.Interface) *ReviseTimesheetUseCase {
	return &ReviseTimesheetUseCase{timesheetRepo: timesheetRepo, logger: logger}
}

func (uc *ReviseTimesheetUseCase) Execute(ctx context.Context, timesheetID uint) (*timesheet.Timesheet, error) {
	ts, err := uc.timesheetRepo.GetByID(ctx, timesheetID)
	if err != nil {
		uc.logger.Errorw("failed to get timesheet", "error", err, "timesheet_id", timesheetID)
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}
	if ts == nil {
		return nil, errors.NewEntityNotFoundError("timesheet", timesheetID)
	}

	if err := ts.Revise(); err != nil {
		return nil, err
	}

	if err := uc.timesheetRepo.Update(ctx, ts); err != nil {
		uc.logger.Errorw("failed to update timesheet", "error", err, "timesheet_id", timesheetID)
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update timesheet: %w", err)
	}

	uc.logger.Infow("timesheet reopened for revision", "timesheet_id", timesheetID)
	return ts, nil
}
