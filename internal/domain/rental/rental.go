package rental

import (
	"fmt"
	"time"

	vo "rentra/internal/domain/rental/valueobjects"
	"rentra/internal/shared/biztime"
	"rentra/internal/shared/errors"
)

// Rental is the aggregate root for a single asset rental. It owns the
// lifecycle state machine (requested -> approved -> dispatched -> returned
// -> closed, with requested -> rejected) and the financial settlement
// computed at return. Rows are never physically deleted; terminal states
// are retained for audit.
type Rental struct {
	id           uint
	rentalNumber string
	assetID      uint
	clientID     uint
	status       vo.RentalStatus

	requestDate     time.Time
	startDate       *time.Time
	expectedEndDate *time.Time
	actualEndDate   *time.Time

	dailyRate     *vo.Money
	depositAmount *vo.Money
	penaltyAmount *vo.Money
	totalAmount   *vo.Money
	totalDays     *int

	notes        *string
	rejectReason *string

	dispatchConditionRating *vo.ConditionRating
	dispatchConditionNotes  *string
	dispatchPhotos          []string

	returnConditionRating *vo.ConditionRating
	returnConditionNotes  *string
	returnPhotos          []string
	hasDamage             bool
	damageDescription     *string
	damagePhotos          []string

	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewRentalParams carries the inputs for a rental request. Pricing fields
// left nil may be filled in at approval.
type NewRentalParams struct {
	RentalNumber    string
	AssetID         uint
	ClientID        uint
	StartDate       *time.Time
	ExpectedEndDate *time.Time
	DailyRate       *vo.Money
	DepositAmount   *vo.Money
	Notes           *string
}

// NewRental creates a rental in the requested state with request_date set
// to the current time.
func NewRental(p NewRentalParams) (*Rental, error) {
	if p.RentalNumber == "" {
		return nil, fmt.Errorf("rental number is required")
	}
	if p.AssetID == 0 {
		return nil, fmt.Errorf("asset ID is required")
	}
	if p.ClientID == 0 {
		return nil, fmt.Errorf("client ID is required")
	}
	if p.StartDate != nil && p.ExpectedEndDate != nil && !p.ExpectedEndDate.After(*p.StartDate) {
		return nil, errors.NewFieldValidationError("expected_end_date", "must be after start date")
	}

	now := biztime.NowUTC()
	return &Rental{
		rentalNumber:    p.RentalNumber,
		assetID:         p.AssetID,
		clientID:        p.ClientID,
		status:          vo.StatusRequested,
		requestDate:     now,
		startDate:       p.StartDate,
		expectedEndDate: p.ExpectedEndDate,
		dailyRate:       p.DailyRate,
		depositAmount:   p.DepositAmount,
		notes:           p.Notes,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// RentalReconstructParams carries all persisted fields for rebuilding the
// aggregate from storage.
type RentalReconstructParams struct {
	ID              uint
	RentalNumber    string
	AssetID         uint
	ClientID        uint
	Status          vo.RentalStatus
	RequestDate     time.Time
	StartDate       *time.Time
	ExpectedEndDate *time.Time
	ActualEndDate   *time.Time
	DailyRate       *vo.Money
	DepositAmount   *vo.Money
	PenaltyAmount   *vo.Money
	TotalAmount     *vo.Money
	TotalDays       *int
	Notes           *string
	RejectReason    *string

	DispatchConditionRating *vo.ConditionRating
	DispatchConditionNotes  *string
	DispatchPhotos          []string
	ReturnConditionRating   *vo.ConditionRating
	ReturnConditionNotes    *string
	ReturnPhotos            []string
	HasDamage               bool
	DamageDescription       *string
	DamagePhotos            []string

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReconstructRental rebuilds a rental from persistence.
func ReconstructRental(p RentalReconstructParams) (*Rental, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("rental ID cannot be zero")
	}
	if p.RentalNumber == "" {
		return nil, fmt.Errorf("rental number is required")
	}
	if !vo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid rental status: %s", p.Status)
	}

	return &Rental{
		id:                      p.ID,
		rentalNumber:            p.RentalNumber,
		assetID:                 p.AssetID,
		clientID:                p.ClientID,
		status:                  p.Status,
		requestDate:             p.RequestDate,
		startDate:               p.StartDate,
		expectedEndDate:         p.ExpectedEndDate,
		actualEndDate:           p.ActualEndDate,
		dailyRate:               p.DailyRate,
		depositAmount:           p.DepositAmount,
		penaltyAmount:           p.PenaltyAmount,
		totalAmount:             p.TotalAmount,
		totalDays:               p.TotalDays,
		notes:                   p.Notes,
		rejectReason:            p.RejectReason,
		dispatchConditionRating: p.DispatchConditionRating,
		dispatchConditionNotes:  p.DispatchConditionNotes,
		dispatchPhotos:          p.DispatchPhotos,
		returnConditionRating:   p.ReturnConditionRating,
		returnConditionNotes:    p.ReturnConditionNotes,
		returnPhotos:            p.ReturnPhotos,
		hasDamage:               p.HasDamage,
		damageDescription:       p.DamageDescription,
		damagePhotos:            p.DamagePhotos,
		version:                 p.Version,
		createdAt:               p.CreatedAt,
		updatedAt:               p.UpdatedAt,
	}, nil
}

func (r *Rental) ID() uint                        { return r.id }
func (r *Rental) RentalNumber() string            { return r.rentalNumber }
func (r *Rental) AssetID() uint                   { return r.assetID }
func (r *Rental) ClientID() uint                  { return r.clientID }
func (r *Rental) Status() vo.RentalStatus         { return r.status }
func (r *Rental) RequestDate() time.Time          { return r.requestDate }
func (r *Rental) StartDate() *time.Time           { return r.startDate }
func (r *Rental) ExpectedEndDate() *time.Time     { return r.expectedEndDate }
func (r *Rental) ActualEndDate() *time.Time       { return r.actualEndDate }
func (r *Rental) DailyRate() *vo.Money            { return r.dailyRate }
func (r *Rental) DepositAmount() *vo.Money        { return r.depositAmount }
func (r *Rental) PenaltyAmount() *vo.Money        { return r.penaltyAmount }
func (r *Rental) TotalAmount() *vo.Money          { return r.totalAmount }
func (r *Rental) TotalDays() *int                 { return r.totalDays }
func (r *Rental) Notes() *string                  { return r.notes }
func (r *Rental) RejectReason() *string           { return r.rejectReason }
func (r *Rental) HasDamage() bool                 { return r.hasDamage }
func (r *Rental) DamageDescription() *string      { return r.damageDescription }
func (r *Rental) DamagePhotos() []string          { return r.damagePhotos }
func (r *Rental) DispatchPhotos() []string        { return r.dispatchPhotos }
func (r *Rental) ReturnPhotos() []string          { return r.returnPhotos }
func (r *Rental) DispatchConditionNotes() *string { return r.dispatchConditionNotes }
func (r *Rental) ReturnConditionNotes() *string   { return r.returnConditionNotes }
func (r *Rental) Version() int                    { return r.version }
func (r *Rental) CreatedAt() time.Time            { return r.createdAt }
func (r *Rental) UpdatedAt() time.Time            { return r.updatedAt }

func (r *Rental) DispatchConditionRating() *vo.ConditionRating { return r.dispatchConditionRating }
func (r *Rental) ReturnConditionRating() *vo.ConditionRating   { return r.returnConditionRating }

// SetID sets the rental ID (only for persistence layer use)
func (r *Rental) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("rental ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("rental ID cannot be zero")
	}
	r.id = id
	return nil
}

func (r *Rental) guardTransition(target vo.RentalStatus, transition string) error {
	if !r.status.CanTransitionTo(target) {
		return errors.NewStateConflictError(r.status.String(), transition)
	}
	return nil
}

// Approve moves the rental from requested to approved, fixing the rental
// period and pricing. minimumDuration comes from the applicable rate and
// is 0 when no rate applies.
func (r *Rental) Approve(startDate, expectedEndDate time.Time, dailyRate vo.Money, depositAmount *vo.Money, minimumDuration int) error {
	if err := r.guardTransition(vo.StatusApproved, "approve"); err != nil {
		return err
	}
	if !expectedEndDate.After(startDate) {
		return errors.NewFieldValidationError("expected_end_date", "must be after start date")
	}
	if !dailyRate.IsPositive() {
		return errors.NewFieldValidationError("daily_rate", "must be positive")
	}
	if minimumDuration > 0 {
		if span := biztime.DaysBetweenCeil(startDate, expectedEndDate); span < minimumDuration {
			return errors.NewFieldValidationError("expected_end_date",
				fmt.Sprintf("rental period of %d days is below the minimum duration of %d days", span, minimumDuration))
		}
	}

	r.status = vo.StatusApproved
	r.startDate = &startDate
	r.expectedEndDate = &expectedEndDate
	r.dailyRate = &dailyRate
	if depositAmount != nil {
		r.depositAmount = depositAmount
	}
	r.touch()
	return nil
}

// Reject moves the rental from requested to the terminal rejected state.
func (r *Rental) Reject(reason string) error {
	if err := r.guardTransition(vo.StatusRejected, "reject"); err != nil {
		return err
	}
	if reason == "" {
		return errors.NewFieldValidationError("reason", "is required")
	}

	r.status = vo.StatusRejected
	r.rejectReason = &reason
	r.touch()
	return nil
}

// Dispatch records the handover of the asset to the client. The caller is
// responsible for claiming the asset through the AssetStatusPort in the
// same transaction.
func (r *Rental) Dispatch(rating vo.ConditionRating, notes *string, photos []string) error {
	if err := r.guardTransition(vo.StatusDispatched, "dispatch"); err != nil {
		return err
	}
	if !vo.ValidConditionRatings[rating] {
		return errors.NewFieldValidationError("condition_rating", fmt.Sprintf("unknown rating %q", rating))
	}

	r.status = vo.StatusDispatched
	r.dispatchConditionRating = &rating
	r.dispatchConditionNotes = notes
	r.dispatchPhotos = photos
	r.touch()
	return nil
}

// ReturnParams carries the field-recorded facts of an asset return.
type ReturnParams struct {
	ActualEndDate     time.Time
	ConditionRating   vo.ConditionRating
	ConditionNotes    *string
	Photos            []string
	HasDamage         bool
	DamageDescription *string
	DamagePhotos      []string
}

// Return records the asset handover back and settles the rental:
//
//	total_days     = max(minimum_duration, days(start, actual_end)), at least 1
//	subtotal       = daily_rate * total_days
//	overdue_days   = max(0, days(expected_end, actual_end))
//	penalty_amount = overdue_days * late_fee_per_day
//	total_amount   = subtotal + penalty_amount
//
// Day counts follow biztime.DaysBetweenCeil (partial days round up).
// The deposit is tracked separately and never subtracted here. terms may
// be nil when no rate applies; the penalty is then zero and no minimum
// duration is enforced.
func (r *Rental) Return(p ReturnParams, terms *RateTerms) error {
	if err := r.guardTransition(vo.StatusReturned, "return"); err != nil {
		return err
	}
	if !vo.ValidConditionRatings[p.ConditionRating] {
		return errors.NewFieldValidationError("condition_rating", fmt.Sprintf("unknown rating %q", p.ConditionRating))
	}
	if r.startDate == nil || r.expectedEndDate == nil || r.dailyRate == nil {
		return errors.NewInternalError("rental is missing approved period or rate", fmt.Sprintf("rental_number=%s", r.rentalNumber))
	}
	if p.ActualEndDate.Before(*r.startDate) {
		return errors.NewFieldValidationError("actual_end_date", "cannot be before start date")
	}
	if p.HasDamage && (p.DamageDescription == nil || *p.DamageDescription == "") {
		return errors.NewFieldValidationError("damage_description", "is required when damage is reported")
	}

	totalDays := biztime.DaysBetweenCeil(*r.startDate, p.ActualEndDate)
	if totalDays < 1 {
		totalDays = 1
	}
	minimumDuration := 0
	lateFee := vo.Zero(r.dailyRate.Currency())
	if terms != nil {
		minimumDuration = terms.MinimumDuration
		lateFee = terms.LateFeePerDay
	}
	if totalDays < minimumDuration {
		totalDays = minimumDuration
	}

	subtotal := r.dailyRate.MultiplyDays(totalDays)
	overdueDays := biztime.DaysBetweenCeil(*r.expectedEndDate, p.ActualEndDate)
	penalty := lateFee.MultiplyDays(overdueDays)
	total, err := subtotal.Add(penalty)
	if err != nil {
		return fmt.Errorf("failed to compute total amount: %w", err)
	}

	r.status = vo.StatusReturned
	r.actualEndDate = &p.ActualEndDate
	r.totalDays = &totalDays
	r.penaltyAmount = &penalty
	r.totalAmount = &total
	r.returnConditionRating = &p.ConditionRating
	r.returnConditionNotes = p.ConditionNotes
	r.returnPhotos = p.Photos
	r.hasDamage = p.HasDamage
	r.damageDescription = p.DamageDescription
	r.damagePhotos = p.DamagePhotos
	r.touch()
	return nil
}

// Close finalizes a returned rental after billing settlement. Terminal.
func (r *Rental) Close() error {
	if err := r.guardTransition(vo.StatusClosed, "close"); err != nil {
		return err
	}
	r.status = vo.StatusClosed
	r.touch()
	return nil
}

// IsOverdue reports whether the rental is past its expected end while out,
// or was settled with a penalty. Derived, never persisted.
func (r *Rental) IsOverdue(now time.Time) bool {
	switch r.status {
	case vo.StatusDispatched:
		return r.expectedEndDate != nil && r.expectedEndDate.Before(now)
	case vo.StatusReturned, vo.StatusClosed:
		return r.penaltyAmount != nil && r.penaltyAmount.IsPositive()
	default:
		return false
	}
}

// ReturnTargetAssetStatus is the asset status the port must set when this
// rental's asset comes back: under maintenance when damage was reported,
// otherwise back to available.
func (r *Rental) ReturnTargetAssetStatus() vo.AssetStatus {
	if r.hasDamage {
		return vo.AssetUnderMaintenance
	}
	return vo.AssetAvailable
}

func (r *Rental) touch() {
	r.updatedAt = biztime.NowUTC()
	r.version++
}
