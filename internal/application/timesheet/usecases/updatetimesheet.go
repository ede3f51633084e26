package usecases

import (
	"context"
	"fmt"

	"rentra/internal/domain/timesheet"
	vo "rentra/internal/domain/timesheet/valueobjects"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

type UpdateTimesheetCommand struct {
	TimesheetID     uint
	OperatingHours  *float64
	StandbyHours    *float64
	BreakdownHours  *float64
	HmKmStart       *float64
	HmKmEnd         *float64
	OperationStatus *vo.OperationStatus
}

type UpdateTimesheetUseCase struct {
	timesheetRepo timesheet.Repository
	standardHours float64
	logger        logger.Interface
}

func NewUpdateTimesheetUseCase(
	timesheetRepo timesheet.Repository,
	standardHours float64,
	logger logger.Interface,
) *UpdateTimesheetUseCase {
	return &UpdateTimesheetUseCase{
		timesheetRepo: timesheetRepo,
		standardHours: standardHours,
		logger:        logger,
	}
}

// Execute records hours, meter readings, and the operation status on a
// draft or revised sheet. Hour fields travel together: when any hour is
// given, the unspecified ones default to the stored values.
func (uc *UpdateTimesheetUseCase) Execute(ctx context.Context, cmd UpdateTimesheetCommand) (*timesheet.Timesheet, error) {
	ts, err := uc.timesheetRepo.GetByID(ctx, cmd.TimesheetID)
	if err != nil {
		uc.logger.Errorw("failed to get timesheet", "error", err, "timesheet_id", cmd.TimesheetID)
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}
	if ts == nil {
		return nil, errors.NewEntityNotFoundError("timesheet", cmd.TimesheetID)
	}

	if cmd.OperatingHours != nil || cmd.StandbyHours != nil || cmd.BreakdownHours != nil {
		operating := ts.OperatingHours()
		standby := ts.StandbyHours()
		breakdown := ts.BreakdownHours()
		if cmd.OperatingHours != nil {
			operating = *cmd.OperatingHours
		}
		if cmd.StandbyHours != nil {
			standby = *cmd.StandbyHours
		}
		if cmd.BreakdownHours != nil {
			breakdown = *cmd.BreakdownHours
		}
		if err := ts.UpdateHours(operating, standby, breakdown, uc.standardHours); err != nil {
			return nil, err
		}
	}

	if cmd.HmKmStart != nil || cmd.HmKmEnd != nil {
		start := ts.HmKmStart()
		end := ts.HmKmEnd()
		if cmd.HmKmStart != nil {
			start = *cmd.HmKmStart
		}
		if cmd.HmKmEnd != nil {
			end = *cmd.HmKmEnd
		}
		if err := ts.SetMeterReadings(start, end); err != nil {
			return nil, err
		}
	}

	if cmd.OperationStatus != nil {
		if err := ts.SetOperationStatus(*cmd.OperationStatus); err != nil {
			return nil, err
		}
	}

	if err := uc.timesheetRepo.Update(ctx, ts); err != nil {
		uc.logger.Errorw("failed to update timesheet", "error", err, "timesheet_id", cmd.TimesheetID)
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update timesheet: %w", err)
	}
	return ts, nil
}
