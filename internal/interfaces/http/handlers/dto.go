// Package handlers contains the gin HTTP handlers for the rental,
// timesheet, and access APIs.
package handlers

import (
	"time"

	"rentra/internal/domain/access"
	"rentra/internal/domain/rental"
	vo "rentra/internal/domain/rental/valueobjects"
	"rentra/internal/domain/timesheet"
	"rentra/internal/shared/biztime"
)

// RentalResponse is the wire shape of a rental.
type RentalResponse struct {
	ID           uint   `json:"id"`
	RentalNumber string `json:"rental_number"`
	AssetID      uint   `json:"asset_id"`
	ClientID     uint   `json:"client_id"`
	Status       string `json:"status"`

	RequestDate     time.Time  `json:"request_date"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	ExpectedEndDate *time.Time `json:"expected_end_date,omitempty"`
	ActualEndDate   *time.Time `json:"actual_end_date,omitempty"`

	DailyRateCents     *int64 `json:"daily_rate_cents,omitempty"`
	DepositAmountCents *int64 `json:"deposit_amount_cents,omitempty"`
	PenaltyAmountCents *int64 `json:"penalty_amount_cents,omitempty"`
	TotalAmountCents   *int64 `json:"total_amount_cents,omitempty"`
	Currency           string `json:"currency"`
	TotalDays          *int   `json:"total_days,omitempty"`

	Notes        *string `json:"notes,omitempty"`
	RejectReason *string `json:"reject_reason,omitempty"`
	HasDamage    bool    `json:"has_damage"`
	IsOverdue    bool    `json:"is_overdue"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toRentalResponse(r *rental.Rental) RentalResponse {
	currency := vo.DefaultCurrency
	if r.DailyRate() != nil {
		currency = r.DailyRate().Currency()
	}
	return RentalResponse{
		ID:                 r.ID(),
		RentalNumber:       r.RentalNumber(),
		AssetID:            r.AssetID(),
		ClientID:           r.ClientID(),
		Status:             r.Status().String(),
		RequestDate:        r.RequestDate(),
		StartDate:          r.StartDate(),
		ExpectedEndDate:    r.ExpectedEndDate(),
		ActualEndDate:      r.ActualEndDate(),
		DailyRateCents:     moneyCents(r.DailyRate()),
		DepositAmountCents: moneyCents(r.DepositAmount()),
		PenaltyAmountCents: moneyCents(r.PenaltyAmount()),
		TotalAmountCents:   moneyCents(r.TotalAmount()),
		Currency:           currency,
		TotalDays:          r.TotalDays(),
		Notes:              r.Notes(),
		RejectReason:       r.RejectReason(),
		HasDamage:          r.HasDamage(),
		IsOverdue:          r.IsOverdue(biztime.NowUTC()),
		CreatedAt:          r.CreatedAt(),
		UpdatedAt:          r.UpdatedAt(),
	}
}

func toRentalResponses(rentals []*rental.Rental) []RentalResponse {
	out := make([]RentalResponse, 0, len(rentals))
	for _, r := range rentals {
		out = append(out, toRentalResponse(r))
	}
	return out
}

func moneyCents(m *vo.Money) *int64 {
	if m == nil {
		return nil
	}
	cents := m.AmountInCents()
	return &cents
}

// TimesheetResponse is the wire shape of a timesheet.
type TimesheetResponse struct {
	ID       uint      `json:"id"`
	RentalID uint      `json:"rental_id"`
	WorkDate time.Time `json:"work_date"`

	OperatingHours float64  `json:"operating_hours"`
	StandbyHours   float64  `json:"standby_hours"`
	OvertimeHours  float64  `json:"overtime_hours"`
	BreakdownHours float64  `json:"breakdown_hours"`
	HmKmStart      float64  `json:"hm_km_start"`
	HmKmEnd        float64  `json:"hm_km_end"`
	HmKmUsage      *float64 `json:"hm_km_usage,omitempty"`

	OperationStatus string `json:"operation_status"`
	Status          string `json:"status"`

	CheckerID        *uint      `json:"checker_id,omitempty"`
	CheckedAt        *time.Time `json:"checked_at,omitempty"`
	CheckerNotes     *string    `json:"checker_notes,omitempty"`
	VerifierID       *uint      `json:"verifier_id,omitempty"`
	VerifierStatus   string     `json:"verifier_status"`
	VerifierAt       *time.Time `json:"verifier_at,omitempty"`
	VerifierNotes    *string    `json:"verifier_notes,omitempty"`
	ClientPICID      *uint      `json:"client_pic_id,omitempty"`
	ClientApprovedAt *time.Time `json:"client_approved_at,omitempty"`

	IsFullyApproved bool `json:"is_fully_approved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toTimesheetResponse(ts *timesheet.Timesheet) TimesheetResponse {
	return TimesheetResponse{
		ID:               ts.ID(),
		RentalID:         ts.RentalID(),
		WorkDate:         ts.WorkDate(),
		OperatingHours:   ts.OperatingHours(),
		StandbyHours:     ts.StandbyHours(),
		OvertimeHours:    ts.OvertimeHours(),
		BreakdownHours:   ts.BreakdownHours(),
		HmKmStart:        ts.HmKmStart(),
		HmKmEnd:          ts.HmKmEnd(),
		HmKmUsage:        ts.HmKmUsage(),
		OperationStatus:  ts.OperationStatus().String(),
		Status:           ts.Status().String(),
		CheckerID:        ts.CheckerID(),
		CheckedAt:        ts.CheckedAt(),
		CheckerNotes:     ts.CheckerNotes(),
		VerifierID:       ts.VerifierID(),
		VerifierStatus:   ts.VerifierStatus().String(),
		VerifierAt:       ts.VerifierAt(),
		VerifierNotes:    ts.VerifierNotes(),
		ClientPICID:      ts.ClientPICID(),
		ClientApprovedAt: ts.ClientApprovedAt(),
		IsFullyApproved:  ts.IsFullyApproved(),
		CreatedAt:        ts.CreatedAt(),
		UpdatedAt:        ts.UpdatedAt(),
	}
}

func toTimesheetResponses(sheets []*timesheet.Timesheet) []TimesheetResponse {
	out := make([]TimesheetResponse, 0, len(sheets))
	for _, ts := range sheets {
		out = append(out, toTimesheetResponse(ts))
	}
	return out
}

// RoleAssignmentResponse is the wire shape of a role assignment.
type RoleAssignmentResponse struct {
	ID             uint       `json:"id"`
	UserID         uint       `json:"user_id"`
	RoleID         uint       `json:"role_id"`
	OrganizationID *uint      `json:"organization_id,omitempty"`
	GrantedBy      uint       `json:"granted_by"`
	GrantedAt      time.Time  `json:"granted_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

func toAssignmentResponse(a *access.RoleAssignment) RoleAssignmentResponse {
	return RoleAssignmentResponse{
		ID:             a.ID(),
		UserID:         a.UserID(),
		RoleID:         a.RoleID(),
		OrganizationID: a.OrganizationID(),
		GrantedBy:      a.GrantedBy(),
		GrantedAt:      a.GrantedAt(),
		ExpiresAt:      a.ExpiresAt(),
	}
}
