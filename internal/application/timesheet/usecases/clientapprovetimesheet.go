package usecases

import (
	"context"
	"fmt"

	"rentra/internal/domain/timesheet"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

type ClientApproveTimesheetCommand struct {
	TimesheetID uint
	ContactID   uint
	Signature   string
}

type ClientApproveTimesheetUseCase struct {
	timesheetRepo timesheet.Repository
	contactRepo   timesheet.ClientContactRepository
	logger        logger.Interface
}

func NewClientApproveTimesheetUseCase(
	timesheetRepo timesheet.Repository,
	contactRepo timesheet.ClientContactRepository,
	logger logger.Interface,
) *ClientApproveTimesheetUseCase {
	return &ClientApproveTimesheetUseCase{
		timesheetRepo: timesheetRepo,
		contactRepo:   contactRepo,
		logger:        logger,
	}
}

// Execute records the client sign-off through an authorized contact.
// Authorization is checked against the contact record before any state
// changes.
func (uc *ClientApproveTimesheetUseCase) Execute(ctx context.Context, cmd ClientApproveTimesheetCommand) (*timesheet.Timesheet, error) {
	ts, err := uc.timesheetRepo.GetByID(ctx, cmd.TimesheetID)
	if err != nil {
		uc.logger.Errorw("failed to get timesheet", "error", err, "timesheet_id", cmd.TimesheetID)
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}
	if ts == nil {
		return nil, errors.NewEntityNotFoundError("timesheet", cmd.TimesheetID)
	}

	contact, err := uc.contactRepo.GetByID(ctx, cmd.ContactID)
	if err != nil {
		uc.logger.Errorw("failed to get client contact", "error", err, "contact_id", cmd.ContactID)
		return nil, fmt.Errorf("failed to get client contact: %w", err)
	}
	if contact == nil {
		return nil, errors.NewEntityNotFoundError("client contact", cmd.ContactID)
	}

	if err := ts.ClientApprove(contact, cmd.Signature); err != nil {
		return nil, err
	}

	if err := uc.timesheetRepo.Update(ctx, ts); err != nil {
		uc.logger.Errorw("failed to update timesheet", "error", err, "timesheet_id", cmd.TimesheetID)
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update timesheet: %w", err)
	}

	uc.logger.Infow("timesheet client approved",
		"timesheet_id", cmd.TimesheetID,
		"contact_id", cmd.ContactID,
		"fully_approved", ts.IsFullyApproved(),
	)
	return ts, nil
}
