package mappers

import (
	"rentra/internal/domain/timesheet"
	vo "rentra/internal/domain/timesheet/valueobjects"
	"rentra/internal/infrastructure/persistence/models"
)

func TimesheetToModel(ts *timesheet.Timesheet) *models.TimesheetModel {
	return &models.TimesheetModel{
		ID:       ts.ID(),
		RentalID: ts.RentalID(),
		WorkDate: ts.WorkDate(),

		OperatingHours: ts.OperatingHours(),
		StandbyHours:   ts.StandbyHours(),
		OvertimeHours:  ts.OvertimeHours(),
		BreakdownHours: ts.BreakdownHours(),

		HmKmStart: ts.HmKmStart(),
		HmKmEnd:   ts.HmKmEnd(),
		HmKmUsage: ts.HmKmUsage(),

		OperationStatus: ts.OperationStatus().String(),

		CheckerID:    ts.CheckerID(),
		CheckedAt:    ts.CheckedAt(),
		CheckerNotes: ts.CheckerNotes(),

		VerifierID:     ts.VerifierID(),
		VerifierStatus: ts.VerifierStatus().String(),
		VerifierAt:     ts.VerifierAt(),
		VerifierNotes:  ts.VerifierNotes(),

		ClientPICID:      ts.ClientPICID(),
		ClientApprovedAt: ts.ClientApprovedAt(),
		ClientSignature:  ts.ClientSignature(),

		Status:    ts.Status().String(),
		Version:   ts.Version(),
		CreatedAt: ts.CreatedAt(),
		UpdatedAt: ts.UpdatedAt(),
	}
}

func TimesheetToDomain(model *models.TimesheetModel) (*timesheet.Timesheet, error) {
	return timesheet.ReconstructTimesheet(timesheet.TimesheetReconstructParams{
		ID:       model.ID,
		RentalID: model.RentalID,
		WorkDate: model.WorkDate,

		OperatingHours: model.OperatingHours,
		StandbyHours:   model.StandbyHours,
		OvertimeHours:  model.OvertimeHours,
		BreakdownHours: model.BreakdownHours,

		HmKmStart: model.HmKmStart,
		HmKmEnd:   model.HmKmEnd,
		HmKmUsage: model.HmKmUsage,

		OperationStatus: vo.OperationStatus(model.OperationStatus),

		CheckerID:    model.CheckerID,
		CheckedAt:    model.CheckedAt,
		CheckerNotes: model.CheckerNotes,

		VerifierID:     model.VerifierID,
		VerifierStatus: vo.VerifierStatus(model.VerifierStatus),
		VerifierAt:     model.VerifierAt,
		VerifierNotes:  model.VerifierNotes,

		ClientPICID:      model.ClientPICID,
		ClientApprovedAt: model.ClientApprovedAt,
		ClientSignature:  model.ClientSignature,

		Status:    vo.TimesheetStatus(model.Status),
		Version:   model.Version,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	})
}

func ClientContactToDomain(model *models.ClientContactModel) (*timesheet.ClientContact, error) {
	return timesheet.ReconstructClientContact(
		model.ID,
		model.ClientID,
		model.Name,
		model.Email,
		model.Phone,
		model.CanApproveTimesheet,
		model.CanApproveBilling,
		centsToMoney(model.ApprovalLimitCents, model.Currency),
		model.IsPrimary,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
