package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentra/internal/domain/rental"
	rentalvo "rentra/internal/domain/rental/valueobjects"
	"rentra/internal/domain/timesheet"
	vo "rentra/internal/domain/timesheet/valueobjects"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

const standardHours = 8.0

type fakeTimesheetRepo struct {
	t      *testing.T
	sheets map[uint]*timesheet.Timesheet
	nextID uint
}

func newFakeTimesheetRepo(t *testing.T) *fakeTimesheetRepo {
	return &fakeTimesheetRepo{t: t, sheets: make(map[uint]*timesheet.Timesheet), nextID: 1}
}

func cloneSheet(t *testing.T, ts *timesheet.Timesheet) *timesheet.Timesheet {
	t.Helper()
	c, err := timesheet.ReconstructTimesheet(timesheet.TimesheetReconstructParams{
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
		OperationStatus:  ts.OperationStatus(),
		CheckerID:        ts.CheckerID(),
		CheckedAt:        ts.CheckedAt(),
		CheckerNotes:     ts.CheckerNotes(),
		VerifierID:       ts.VerifierID(),
		VerifierStatus:   ts.VerifierStatus(),
		VerifierAt:       ts.VerifierAt(),
		VerifierNotes:    ts.VerifierNotes(),
		ClientPICID:      ts.ClientPICID(),
		ClientApprovedAt: ts.ClientApprovedAt(),
		ClientSignature:  ts.ClientSignature(),
		Status:           ts.Status(),
		Version:          ts.Version(),
		CreatedAt:        ts.CreatedAt(),
		UpdatedAt:        ts.UpdatedAt(),
	})
	require.NoError(t, err)
	return c
}

func (f *fakeTimesheetRepo) Create(_ context.Context, ts *timesheet.Timesheet) error {
	_ = ts.SetID(f.nextID)
	f.sheets[f.nextID] = cloneSheet(f.t, ts)
	f.nextID++
	return nil
}

func (f *fakeTimesheetRepo) GetByID(_ context.Context, id uint) (*timesheet.Timesheet, error) {
	stored, ok := f.sheets[id]
	if !ok {
		return nil, nil
	}
	return cloneSheet(f.t, stored), nil
}

func (f *fakeTimesheetRepo) GetByRentalAndDate(_ context.Context, rentalID uint, workDate time.Time) (*timesheet.Timesheet, error) {
	for _, ts := range f.sheets {
		if ts.RentalID() == rentalID && ts.WorkDate().Equal(workDate) {
			return cloneSheet(f.t, ts), nil
		}
	}
	return nil, nil
}

func (f *fakeTimesheetRepo) Update(_ context.Context, ts *timesheet.Timesheet) error {
	stored, ok := f.sheets[ts.ID()]
	if !ok {
		return errors.NewEntityNotFoundError("timesheet", ts.ID())
	}
	if stored.Version() != ts.Version()-1 {
		return errors.NewConcurrencyConflictError("timesheet", ts.ID())
	}
	f.sheets[ts.ID()] = cloneSheet(f.t, ts)
	return nil
}

func (f *fakeTimesheetRepo) List(_ context.Context, filter timesheet.Filter) ([]*timesheet.Timesheet, int64, error) {
	out := make([]*timesheet.Timesheet, 0, len(f.sheets))
	for _, ts := range f.sheets {
		if filter.RentalID != nil && ts.RentalID() != *filter.RentalID {
			continue
		}
		if filter.Status != nil && ts.Status() != *filter.Status {
			continue
		}
		out = append(out, cloneSheet(f.t, ts))
	}
	return out, int64(len(out)), nil
}

type stubRentalRepo struct {
	rental *rental.Rental
}

func (f *stubRentalRepo) Create(_ context.Context, _ *rental.Rental) error { return nil }
func (f *stubRentalRepo) GetByID(_ context.Context, id uint) (*rental.Rental, error) {
	if f.rental != nil && f.rental.ID() == id {
		return f.rental, nil
	}
	return nil, nil
}
func (f *stubRentalRepo) GetByRentalNumber(_ context.Context, _ string) (*rental.Rental, error) {
	return nil, nil
}
func (f *stubRentalRepo) Update(_ context.Context, _ *rental.Rental) error { return nil }
func (f *stubRentalRepo) List(_ context.Context, _ rental.Filter) ([]*rental.Rental, int64, error) {
	return nil, 0, nil
}

type stubContactRepo struct {
	contacts map[uint]*timesheet.ClientContact
}

func (f *stubContactRepo) GetByID(_ context.Context, id uint) (*timesheet.ClientContact, error) {
	return f.contacts[id], nil
}
func (f *stubContactRepo) GetPrimaryByClientID(_ context.Context, _ uint) (*timesheet.ClientContact, error) {
	return nil, nil
}
func (f *stubContactRepo) ListByClientID(_ context.Context, _ uint) ([]*timesheet.ClientContact, error) {
	return nil, nil
}

func dispatchedRental(t *testing.T) *rental.Rental {
	t.Helper()
	r, err := rental.ReconstructRental(rental.RentalReconstructParams{
		ID:           1,
		RentalNumber: "RNT-test000001",
		AssetID:      1,
		ClientID:     2,
		Status:       rentalvo.StatusDispatched,
		RequestDate:  time.Now().UTC(),
		Version:      3,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	return r
}

type tsFixture struct {
	sheets   *fakeTimesheetRepo
	rentals  *stubRentalRepo
	contacts *stubContactRepo
	log      logger.Interface
}

func newTsFixture(t *testing.T) *tsFixture {
	contact, err := timesheet.ReconstructClientContact(7, 2, "Budi Santoso", "budi@client.example", "",
		true, false, nil, true, true, time.Now(), time.Now())
	require.NoError(t, err)
	return &tsFixture{
		sheets:   newFakeTimesheetRepo(t),
		rentals:  &stubRentalRepo{rental: dispatchedRental(t)},
		contacts: &stubContactRepo{contacts: map[uint]*timesheet.ClientContact{7: contact}},
		log:      logger.NewLogger(),
	}
}

func (f *tsFixture) create(t *testing.T, workDate time.Time) *timesheet.Timesheet {
	t.Helper()
	uc := NewCreateTimesheetUseCase(f.sheets, f.rentals, f.log)
	ts, err := uc.Execute(context.Background(), CreateTimesheetCommand{RentalID: 1, WorkDate: workDate})
	require.NoError(t, err)
	return ts
}

func (f *tsFixture) submit(t *testing.T, timesheetID uint) *timesheet.Timesheet {
	t.Helper()
	uc := NewSubmitTimesheetUseCase(f.sheets, f.log)
	ts, err := uc.Execute(context.Background(), SubmitTimesheetCommand{TimesheetID: timesheetID, CheckerID: 5})
	require.NoError(t, err)
	return ts
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateTimesheet(t *testing.T) {
	f := newTsFixture(t)
	ts := f.create(t, day(15))

	assert.Equal(t, vo.StatusDraft, ts.Status())
	assert.NotZero(t, ts.ID())
}

func TestCreateTimesheet_DuplicateDate(t *testing.T) {
	f := newTsFixture(t)
	f.create(t, day(15))

	uc := NewCreateTimesheetUseCase(f.sheets, f.rentals, f.log)
	_, err := uc.Execute(context.Background(), CreateTimesheetCommand{RentalID: 1, WorkDate: day(15)})
	assert.True(t, errors.GetAppError(err) != nil && errors.GetAppError(err).Type == errors.ErrorTypeConflict)
}

func TestCreateTimesheet_RentalNotDispatched(t *testing.T) {
	f := newTsFixture(t)
	r, err := rental.ReconstructRental(rental.RentalReconstructParams{
		ID:           1,
		RentalNumber: "RNT-test000001",
		AssetID:      1,
		ClientID:     2,
		Status:       rentalvo.StatusApproved,
		RequestDate:  time.Now().UTC(),
		Version:      2,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	f.rentals.rental = r

	uc := NewCreateTimesheetUseCase(f.sheets, f.rentals, f.log)
	_, err = uc.Execute(context.Background(), CreateTimesheetCommand{RentalID: 1, WorkDate: day(15)})
	assert.True(t, errors.IsStateConflictError(err))
}

func TestUpdateTimesheet(t *testing.T) {
	f := newTsFixture(t)
	ts := f.create(t, day(15))

	operating := 10.0
	hmStart := 1200.0
	hmEnd := 1210.5
	status := vo.OperationOperating
	uc := NewUpdateTimesheetUseCase(f.sheets, standardHours, f.log)
	updated, err := uc.Execute(context.Background(), UpdateTimesheetCommand{
		TimesheetID:     ts.ID(),
		OperatingHours:  &operating,
		HmKmStart:       &hmStart,
		HmKmEnd:         &hmEnd,
		OperationStatus: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, 10.0, updated.OperatingHours())
	assert.Equal(t, 2.0, updated.OvertimeHours())
	require.NotNil(t, updated.HmKmUsage())
	assert.InDelta(t, 10.5, *updated.HmKmUsage(), 0.0001)
	assert.Equal(t, vo.OperationOperating, updated.OperationStatus())
}

func TestUpdateTimesheet_NegativeUsage(t *testing.T) {
	f := newTsFixture(t)
	ts := f.create(t, day(15))

	hmStart := 100.0
	hmEnd := 80.0
	uc := NewUpdateTimesheetUseCase(f.sheets, standardHours, f.log)
	_, err := uc.Execute(context.Background(), UpdateTimesheetCommand{
		TimesheetID: ts.ID(),
		HmKmStart:   &hmStart,
		HmKmEnd:     &hmEnd,
	})

	assert.True(t, errors.IsValidationError(err))
	stored, getErr := f.sheets.GetByID(context.Background(), ts.ID())
	require.NoError(t, getErr)
	assert.Nil(t, stored.HmKmUsage())
}

func TestApprovalChain(t *testing.T) {
	f := newTsFixture(t)
	ts := f.create(t, day(15))
	f.submit(t, ts.ID())

	verify := NewVerifyTimesheetUseCase(f.sheets, f.log)
	verified, err := verify.Execute(context.Background(), VerifyTimesheetCommand{
		TimesheetID: ts.ID(),
		VerifierID:  9,
		Approve:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusVerified, verified.Status())
	assert.False(t, verified.IsFullyApproved())

	approve := NewClientApproveTimesheetUseCase(f.sheets, f.contacts, f.log)
	approved, err := approve.Execute(context.Background(), ClientApproveTimesheetCommand{
		TimesheetID: ts.ID(),
		ContactID:   7,
		Signature:   "sig-data",
	})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusApproved, approved.Status())
	assert.True(t, approved.IsFullyApproved())
}

func TestDisputeReviseResubmit(t *testing.T) {
	f := newTsFixture(t)
	ts := f.create(t, day(15))
	f.submit(t, ts.ID())

	notes := "hours exceed shift"
	verify := NewVerifyTimesheetUseCase(f.sheets, f.log)
	disputed, err := verify.Execute(context.Background(), VerifyTimesheetCommand{
		TimesheetID: ts.ID(),
		VerifierID:  9,
		Approve:     false,
		Notes:       &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusDisputed, disputed.Status())

	revise := NewReviseTimesheetUseCase(f.sheets, f.log)
	revised, err := revise.Execute(context.Background(), ts.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusRevised, revised.Status())

	resubmitted := f.submit(t, ts.ID())
	assert.Equal(t, vo.StatusSubmitted, resubmitted.Status())
	assert.Equal(t, vo.VerifierPending, resubmitted.VerifierStatus())
}

func TestClientApprove_UnknownContact(t *testing.T) {
	f := newTsFixture(t)
	ts := f.create(t, day(15))
	f.submit(t, ts.ID())

	approve := NewClientApproveTimesheetUseCase(f.sheets, f.contacts, f.log)
	_, err := approve.Execute(context.Background(), ClientApproveTimesheetCommand{
		TimesheetID: ts.ID(),
		ContactID:   99,
		Signature:   "sig",
	})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestListTimesheets(t *testing.T) {
	f := newTsFixture(t)
	f.create(t, day(15))
	f.create(t, day(16))

	uc := NewListTimesheetsUseCase(f.sheets, f.log)
	rentalID := uint(1)
	sheets, total, err := uc.Execute(context.Background(), ListTimesheetsQuery{RentalID: &rentalID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, sheets, 2)
	assert.Equal(t, int64(2), total)
}
