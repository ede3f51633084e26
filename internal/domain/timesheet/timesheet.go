package timesheet

import (
	"fmt"
	"time"

	vo "rentra/internal/domain/timesheet/valueobjects"
	"rentra/internal/shared/biztime"
	"rentra/internal/shared/errors"
)

// Timesheet is the aggregate root for one day of recorded asset operation
// under a rental. Two independent sign-off tracks gate full approval: the
// supervisor verification track (verifier_status) and the client track
// (client_approved_at + signature). Both must be satisfied; neither alone
// suffices.
type Timesheet struct {
	id       uint
	rentalID uint
	workDate time.Time

	operatingHours float64
	standbyHours   float64
	overtimeHours  float64
	breakdownHours float64

	hmKmStart float64
	hmKmEnd   float64
	hmKmUsage *float64

	operationStatus vo.OperationStatus

	checkerID    *uint
	checkedAt    *time.Time
	checkerNotes *string

	verifierID     *uint
	verifierStatus vo.VerifierStatus
	verifierAt     *time.Time
	verifierNotes  *string

	clientPICID     *uint
	clientApprovedAt *time.Time
	clientSignature  *string

	status    vo.TimesheetStatus
	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewTimesheet creates a draft timesheet for one work date of a rental.
func NewTimesheet(rentalID uint, workDate time.Time) (*Timesheet, error) {
	if rentalID == 0 {
		return nil, fmt.Errorf("rental ID is required")
	}
	if workDate.IsZero() {
		return nil, fmt.Errorf("work date is required")
	}

	now := biztime.NowUTC()
	return &Timesheet{
		rentalID:        rentalID,
		workDate:        workDate,
		operationStatus: vo.OperationNoOperation,
		verifierStatus:  vo.VerifierPending,
		status:          vo.StatusDraft,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// TimesheetReconstructParams carries persisted fields for rebuilding the
// aggregate from storage.
type TimesheetReconstructParams struct {
	ID       uint
	RentalID uint
	WorkDate time.Time

	OperatingHours float64
	StandbyHours   float64
	OvertimeHours  float64
	BreakdownHours float64

	HmKmStart float64
	HmKmEnd   float64
	HmKmUsage *float64

	OperationStatus vo.OperationStatus

	CheckerID    *uint
	CheckedAt    *time.Time
	CheckerNotes *string

	VerifierID     *uint
	VerifierStatus vo.VerifierStatus
	VerifierAt     *time.Time
	VerifierNotes  *string

	ClientPICID      *uint
	ClientApprovedAt *time.Time
	ClientSignature  *string

	Status    vo.TimesheetStatus
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReconstructTimesheet rebuilds a timesheet from persistence.
func ReconstructTimesheet(p TimesheetReconstructParams) (*Timesheet, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("timesheet ID cannot be zero")
	}
	if p.RentalID == 0 {
		return nil, fmt.Errorf("rental ID is required")
	}
	if !vo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid timesheet status: %s", p.Status)
	}
	if !vo.ValidVerifierStatuses[p.VerifierStatus] {
		return nil, fmt.Errorf("invalid verifier status: %s", p.VerifierStatus)
	}
	if !vo.ValidOperationStatuses[p.OperationStatus] {
		return nil, fmt.Errorf("invalid operation status: %s", p.OperationStatus)
	}

	return &Timesheet{
		id:               p.ID,
		rentalID:         p.RentalID,
		workDate:         p.WorkDate,
		operatingHours:   p.OperatingHours,
		standbyHours:     p.StandbyHours,
		overtimeHours:    p.OvertimeHours,
		breakdownHours:   p.BreakdownHours,
		hmKmStart:        p.HmKmStart,
		hmKmEnd:          p.HmKmEnd,
		hmKmUsage:        p.HmKmUsage,
		operationStatus:  p.OperationStatus,
		checkerID:        p.CheckerID,
		checkedAt:        p.CheckedAt,
		checkerNotes:     p.CheckerNotes,
		verifierID:       p.VerifierID,
		verifierStatus:   p.VerifierStatus,
		verifierAt:       p.VerifierAt,
		verifierNotes:    p.VerifierNotes,
		clientPICID:      p.ClientPICID,
		clientApprovedAt: p.ClientApprovedAt,
		clientSignature:  p.ClientSignature,
		status:           p.Status,
		version:          p.Version,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}, nil
}

func (t *Timesheet) ID() uint                           { return t.id }
func (t *Timesheet) RentalID() uint                     { return t.rentalID }
func (t *Timesheet) WorkDate() time.Time                { return t.workDate }
func (t *Timesheet) OperatingHours() float64            { return t.operatingHours }
func (t *Timesheet) StandbyHours() float64              { return t.standbyHours }
func (t *Timesheet) OvertimeHours() float64             { return t.overtimeHours }
func (t *Timesheet) BreakdownHours() float64            { return t.breakdownHours }
func (t *Timesheet) HmKmStart() float64                 { return t.hmKmStart }
func (t *Timesheet) HmKmEnd() float64                   { return t.hmKmEnd }
func (t *Timesheet) HmKmUsage() *float64                { return t.hmKmUsage }
func (t *Timesheet) OperationStatus() vo.OperationStatus { return t.operationStatus }
func (t *Timesheet) CheckerID() *uint                   { return t.checkerID }
func (t *Timesheet) CheckedAt() *time.Time              { return t.checkedAt }
func (t *Timesheet) CheckerNotes() *string              { return t.checkerNotes }
func (t *Timesheet) VerifierID() *uint                  { return t.verifierID }
func (t *Timesheet) VerifierStatus() vo.VerifierStatus  { return t.verifierStatus }
func (t *Timesheet) VerifierAt() *time.Time             { return t.verifierAt }
func (t *Timesheet) VerifierNotes() *string             { return t.verifierNotes }
func (t *Timesheet) ClientPICID() *uint                 { return t.clientPICID }
func (t *Timesheet) ClientApprovedAt() *time.Time       { return t.clientApprovedAt }
func (t *Timesheet) ClientSignature() *string           { return t.clientSignature }
func (t *Timesheet) Status() vo.TimesheetStatus         { return t.status }
func (t *Timesheet) Version() int                       { return t.version }
func (t *Timesheet) CreatedAt() time.Time               { return t.createdAt }
func (t *Timesheet) UpdatedAt() time.Time               { return t.updatedAt }

// SetID sets the timesheet ID (only for persistence layer use)
func (t *Timesheet) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("timesheet ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("timesheet ID cannot be zero")
	}
	t.id = id
	return nil
}

// UpdateHours records the day's hours and recomputes overtime against the
// standard-hours threshold: overtime = max(0, operating - standard).
// Hours are only editable while the sheet is in draft or revised.
func (t *Timesheet) UpdateHours(operating, standby, breakdown, standardHours float64) error {
	if t.status != vo.StatusDraft && t.status != vo.StatusRevised {
		return errors.NewStateConflictError(t.status.String(), "update hours")
	}
	if operating < 0 || standby < 0 || breakdown < 0 {
		return errors.NewFieldValidationError("hours", "cannot be negative")
	}

	t.operatingHours = operating
	t.standbyHours = standby
	t.breakdownHours = breakdown
	t.overtimeHours = CalculateOvertime(operating, standardHours)
	t.touch()
	return nil
}

// CalculateOvertime computes overtime hours above the standard threshold.
func CalculateOvertime(operatingHours, standardHours float64) float64 {
	overtime := operatingHours - standardHours
	if overtime < 0 {
		return 0
	}
	return overtime
}

// SetMeterReadings records hour-meter/odometer readings and derives usage.
// A negative usage is a validation failure and leaves hm_km_usage unset.
func (t *Timesheet) SetMeterReadings(start, end float64) error {
	if t.status != vo.StatusDraft && t.status != vo.StatusRevised {
		return errors.NewStateConflictError(t.status.String(), "set meter readings")
	}
	usage, err := CalculateUsage(start, end)
	if err != nil {
		return err
	}

	t.hmKmStart = start
	t.hmKmEnd = end
	t.hmKmUsage = &usage
	t.touch()
	return nil
}

// CalculateUsage derives hm/km usage from start and end readings. A
// reading that went backwards is rejected rather than stored.
func CalculateUsage(start, end float64) (float64, error) {
	usage := end - start
	if usage < 0 {
		return 0, errors.NewFieldValidationError("hm_km_usage",
			fmt.Sprintf("end reading %.2f is below start reading %.2f", end, start))
	}
	return usage, nil
}

// SetOperationStatus records what the asset did on the work date.
func (t *Timesheet) SetOperationStatus(status vo.OperationStatus) error {
	if !vo.ValidOperationStatuses[status] {
		return errors.NewFieldValidationError("operation_status", fmt.Sprintf("unknown status %q", status))
	}
	t.operationStatus = status
	t.touch()
	return nil
}

// Submit sends the sheet for verification. Legal from draft and from
// revised (the correction loop); resubmission resets the verification
// track to pending.
func (t *Timesheet) Submit(checkerID uint, notes *string) error {
	if checkerID == 0 {
		return errors.NewFieldValidationError("checker_id", "is required")
	}
	if !t.status.CanTransitionTo(vo.StatusSubmitted) {
		return errors.NewStateConflictError(t.status.String(), "submit")
	}

	now := biztime.NowUTC()
	t.status = vo.StatusSubmitted
	t.checkerID = &checkerID
	t.checkedAt = &now
	t.checkerNotes = notes
	t.verifierID = nil
	t.verifierStatus = vo.VerifierPending
	t.verifierAt = nil
	t.verifierNotes = nil
	t.touch()
	return nil
}

// Verify records the supervisor's decision on a submitted sheet. A
// dispute requires notes explaining what is wrong. Approving moves the
// overall status to verified, or straight to approved when the client
// track is already satisfied.
func (t *Timesheet) Verify(verifierID uint, approve bool, notes *string) error {
	if verifierID == 0 {
		return errors.NewFieldValidationError("verifier_id", "is required")
	}
	if t.status != vo.StatusSubmitted {
		return errors.NewStateConflictError(t.status.String(), "verify")
	}
	if !approve && (notes == nil || *notes == "") {
		return errors.NewFieldValidationError("verifier_notes", "are required when disputing")
	}

	now := biztime.NowUTC()
	t.verifierID = &verifierID
	t.verifierAt = &now
	t.verifierNotes = notes

	if approve {
		t.verifierStatus = vo.VerifierApproved
		t.status = vo.StatusVerified
		if t.clientApprovedAt != nil {
			t.status = vo.StatusApproved
		}
	} else {
		t.verifierStatus = vo.VerifierDisputed
		t.status = vo.StatusDisputed
	}
	t.touch()
	return nil
}

// Revise reopens a disputed sheet for correction by the checker.
func (t *Timesheet) Revise() error {
	if !t.status.CanTransitionTo(vo.StatusRevised) {
		return errors.NewStateConflictError(t.status.String(), "revise")
	}
	t.status = vo.StatusRevised
	t.touch()
	return nil
}

// ClientApprove records the client sign-off through an authorized contact.
// The contact must be active and flagged can_approve_timesheet; otherwise
// the approval is denied before any state changes. Approval is granted
// once; a second call conflicts.
func (t *Timesheet) ClientApprove(contact *ClientContact, signature string) error {
	if contact == nil {
		return errors.NewFieldValidationError("contact", "is required")
	}
	if !contact.IsActive() || !contact.CanApproveTimesheet() {
		return errors.NewPermissionDeniedError("client contact authorized for timesheet approval")
	}
	if signature == "" {
		return errors.NewFieldValidationError("signature", "is required")
	}
	if t.clientApprovedAt != nil {
		return errors.NewStateConflictError(t.status.String(), "client approve")
	}

	now := biztime.NowUTC()
	contactID := contact.ID()
	t.clientPICID = &contactID
	t.clientApprovedAt = &now
	t.clientSignature = &signature
	if t.verifierStatus == vo.VerifierApproved {
		t.status = vo.StatusApproved
	}
	t.touch()
	return nil
}

// IsFullyApproved reports whether both sign-off tracks are satisfied:
// the verifier approved AND the client approval was granted. This
// predicate gates downstream billing.
func (t *Timesheet) IsFullyApproved() bool {
	return t.verifierStatus == vo.VerifierApproved && t.clientApprovedAt != nil
}

func (t *Timesheet) touch() {
	t.updatedAt = biztime.NowUTC()
	t.version++
}
