package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentra/internal/domain/rental"
	vo "rentra/internal/domain/rental/valueobjects"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

// fakeRentalRepo mimics the GORM repository: reads return a detached
// copy and updates enforce the optimistic version check.
type fakeRentalRepo struct {
	rentals map[uint]*rental.Rental
	nextID  uint
}

func newFakeRentalRepo() *fakeRentalRepo {
	return &fakeRentalRepo{rentals: make(map[uint]*rental.Rental), nextID: 1}
}

func clone(t *testing.T, r *rental.Rental) *rental.Rental {
	t.Helper()
	c, err := rental.ReconstructRental(rental.RentalReconstructParams{
		ID:                      r.ID(),
		RentalNumber:            r.RentalNumber(),
		AssetID:                 r.AssetID(),
		ClientID:                r.ClientID(),
		Status:                  r.Status(),
		RequestDate:             r.RequestDate(),
		StartDate:               r.StartDate(),
		ExpectedEndDate:         r.ExpectedEndDate(),
		ActualEndDate:           r.ActualEndDate(),
		DailyRate:               r.DailyRate(),
		DepositAmount:           r.DepositAmount(),
		PenaltyAmount:           r.PenaltyAmount(),
		TotalAmount:             r.TotalAmount(),
		TotalDays:               r.TotalDays(),
		Notes:                   r.Notes(),
		RejectReason:            r.RejectReason(),
		DispatchConditionRating: r.DispatchConditionRating(),
		DispatchConditionNotes:  r.DispatchConditionNotes(),
		DispatchPhotos:          r.DispatchPhotos(),
		ReturnConditionRating:   r.ReturnConditionRating(),
		ReturnConditionNotes:    r.ReturnConditionNotes(),
		ReturnPhotos:            r.ReturnPhotos(),
		HasDamage:               r.HasDamage(),
		DamageDescription:       r.DamageDescription(),
		DamagePhotos:            r.DamagePhotos(),
		Version:                 r.Version(),
		CreatedAt:               r.CreatedAt(),
		UpdatedAt:               r.UpdatedAt(),
	})
	require.NoError(t, err)
	return c
}

type testRentalRepo struct {
	*fakeRentalRepo
	t *testing.T
}

func (f *testRentalRepo) Create(_ context.Context, r *rental.Rental) error {
	_ = r.SetID(f.nextID)
	f.rentals[f.nextID] = clone(f.t, r)
	f.nextID++
	return nil
}

func (f *testRentalRepo) GetByID(_ context.Context, id uint) (*rental.Rental, error) {
	stored, ok := f.rentals[id]
	if !ok {
		return nil, nil
	}
	return clone(f.t, stored), nil
}

func (f *testRentalRepo) GetByRentalNumber(_ context.Context, number string) (*rental.Rental, error) {
	for _, r := range f.rentals {
		if r.RentalNumber() == number {
			return clone(f.t, r), nil
		}
	}
	return nil, nil
}

func (f *testRentalRepo) Update(_ context.Context, r *rental.Rental) error {
	stored, ok := f.rentals[r.ID()]
	if !ok {
		return errors.NewEntityNotFoundError("rental", r.ID())
	}
	if stored.Version() != r.Version()-1 {
		return errors.NewConcurrencyConflictError("rental", r.ID())
	}
	f.rentals[r.ID()] = clone(f.t, r)
	return nil
}

func (f *testRentalRepo) List(_ context.Context, _ rental.Filter) ([]*rental.Rental, int64, error) {
	out := make([]*rental.Rental, 0, len(f.rentals))
	for _, r := range f.rentals {
		out = append(out, clone(f.t, r))
	}
	return out, int64(len(out)), nil
}

// fakeAssetPort holds asset statuses and enforces the compare-and-set
// contract.
type fakeAssetPort struct {
	statuses map[uint]vo.AssetStatus
}

func (f *fakeAssetPort) GetStatus(_ context.Context, assetID uint) (vo.AssetStatus, error) {
	status, ok := f.statuses[assetID]
	if !ok {
		return "", errors.NewEntityNotFoundError("asset", assetID)
	}
	return status, nil
}

func (f *fakeAssetPort) SetStatus(_ context.Context, assetID uint, expected []vo.AssetStatus, target vo.AssetStatus) error {
	current, ok := f.statuses[assetID]
	if !ok {
		return errors.NewEntityNotFoundError("asset", assetID)
	}
	for _, e := range expected {
		if current == e {
			f.statuses[assetID] = target
			return nil
		}
	}
	return errors.NewAssetConflictError("asset is not in a required status",
		"current="+current.String())
}

type fakeRatePort struct {
	terms *rental.RateTerms
}

func (f *fakeRatePort) Lookup(_ context.Context, _, _ *uint) (*rental.RateTerms, error) {
	return f.terms, nil
}

// passthroughTx runs the function directly; the fakes have no real
// transaction to join.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingNotifier struct {
	approved []string
	rejected []string
	returned []string
}

func (n *recordingNotifier) RentalApproved(_ context.Context, r *rental.Rental) error {
	n.approved = append(n.approved, r.RentalNumber())
	return nil
}

func (n *recordingNotifier) RentalRejected(_ context.Context, r *rental.Rental) error {
	n.rejected = append(n.rejected, r.RentalNumber())
	return nil
}

func (n *recordingNotifier) RentalReturned(_ context.Context, r *rental.Rental) error {
	n.returned = append(n.returned, r.RentalNumber())
	return nil
}

type fixture struct {
	repo     *testRentalRepo
	assets   *fakeAssetPort
	rates    *fakeRatePort
	notifier *recordingNotifier
	log      logger.Interface
}

func newFixture(t *testing.T) *fixture {
	return &fixture{
		repo:     &testRentalRepo{fakeRentalRepo: newFakeRentalRepo(), t: t},
		assets:   &fakeAssetPort{statuses: map[uint]vo.AssetStatus{1: vo.AssetAvailable}},
		rates:    &fakeRatePort{},
		notifier: &recordingNotifier{},
		log:      logger.NewLogger(),
	}
}

func (f *fixture) createRequested(t *testing.T) *rental.Rental {
	t.Helper()
	uc := NewCreateRentalUseCase(f.repo, f.assets, f.log)
	r, err := uc.Execute(context.Background(), CreateRentalCommand{AssetID: 1, ClientID: 2})
	require.NoError(t, err)
	return r
}

func (f *fixture) approve(t *testing.T, rentalID uint) *rental.Rental {
	t.Helper()
	uc := NewApproveRentalUseCase(f.repo, f.rates, f.notifier, f.log)
	r, err := uc.Execute(context.Background(), ApproveRentalCommand{
		RentalID:        rentalID,
		StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpectedEndDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		DailyRateCents:  100_00,
	})
	require.NoError(t, err)
	return r
}

func (f *fixture) dispatch(t *testing.T, rentalID uint) *rental.Rental {
	t.Helper()
	uc := NewDispatchRentalUseCase(f.repo, f.assets, passthroughTx{}, f.log)
	r, err := uc.Execute(context.Background(), DispatchRentalCommand{
		RentalID:        rentalID,
		ConditionRating: vo.ConditionGood,
	})
	require.NoError(t, err)
	return r
}

func TestCreateRental(t *testing.T) {
	f := newFixture(t)
	r := f.createRequested(t)

	assert.Equal(t, vo.StatusRequested, r.Status())
	assert.NotEmpty(t, r.RentalNumber())
	assert.NotZero(t, r.ID())
}

func TestCreateRental_UnknownAsset(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateRentalUseCase(f.repo, f.assets, f.log)

	_, err := uc.Execute(context.Background(), CreateRentalCommand{AssetID: 99, ClientID: 2})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestApproveRental(t *testing.T) {
	f := newFixture(t)
	r := f.createRequested(t)

	approved := f.approve(t, r.ID())

	assert.Equal(t, vo.StatusApproved, approved.Status())
	assert.Equal(t, int64(100_00), approved.DailyRate().AmountInCents())
	assert.Equal(t, []string{approved.RentalNumber()}, f.notifier.approved)
}

func TestApproveRental_BelowMinimumDuration(t *testing.T) {
	f := newFixture(t)
	f.rates.terms = &rental.RateTerms{
		DailyRate:       vo.NewMoney(100_00, ""),
		LateFeePerDay:   vo.NewMoney(20_00, ""),
		MinimumDuration: 30,
	}
	r := f.createRequested(t)

	uc := NewApproveRentalUseCase(f.repo, f.rates, f.notifier, f.log)
	_, err := uc.Execute(context.Background(), ApproveRentalCommand{
		RentalID:        r.ID(),
		StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpectedEndDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		DailyRateCents:  100_00,
	})

	assert.True(t, errors.IsValidationError(err))
	assert.Empty(t, f.notifier.approved)
}

func TestApproveRental_RacingApprovalsExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	r := f.createRequested(t)

	// Both load the requested rental before either writes.
	first, err := f.repo.GetByID(context.Background(), r.ID())
	require.NoError(t, err)
	second, err := f.repo.GetByID(context.Background(), r.ID())
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	rate := vo.NewMoney(100_00, "")
	require.NoError(t, first.Approve(start, end, rate, nil, 0))
	require.NoError(t, second.Approve(start, end, rate, nil, 0))

	require.NoError(t, f.repo.Update(context.Background(), first))
	err = f.repo.Update(context.Background(), second)
	assert.True(t, errors.IsConcurrencyConflictError(err))
}

func TestRejectRental(t *testing.T) {
	f := newFixture(t)
	r := f.createRequested(t)

	uc := NewRejectRentalUseCase(f.repo, f.notifier, f.log)
	rejected, err := uc.Execute(context.Background(), RejectRentalCommand{RentalID: r.ID(), Reason: "credit hold"})
	require.NoError(t, err)

	assert.Equal(t, vo.StatusRejected, rejected.Status())
	assert.Equal(t, []string{rejected.RentalNumber()}, f.notifier.rejected)
}

func TestDispatchRental_ClaimsAsset(t *testing.T) {
	f := newFixture(t)
	r := f.createRequested(t)
	f.approve(t, r.ID())

	dispatched := f.dispatch(t, r.ID())

	assert.Equal(t, vo.StatusDispatched, dispatched.Status())
	assert.Equal(t, vo.AssetRented, f.assets.statuses[1])
}

func TestDispatchRental_AssetConflictLeavesRentalUnchanged(t *testing.T) {
	f := newFixture(t)
	r := f.createRequested(t)
	f.approve(t, r.ID())
	f.assets.statuses[1] = vo.AssetUnderMaintenance

	uc := NewDispatchRentalUseCase(f.repo, f.assets, passthroughTx{}, f.log)
	_, err := uc.Execute(context.Background(), DispatchRentalCommand{
		RentalID:        r.ID(),
		ConditionRating: vo.ConditionGood,
	})

	assert.True(t, errors.IsAssetConflictError(err))
	stored, getErr := f.repo.GetByID(context.Background(), r.ID())
	require.NoError(t, getErr)
	assert.Equal(t, vo.StatusApproved, stored.Status())
	assert.Equal(t, vo.AssetUnderMaintenance, f.assets.statuses[1])
}

func TestReturnRental_ReleasesAsset(t *testing.T) {
	f := newFixture(t)
	f.rates.terms = &rental.RateTerms{
		DailyRate:     vo.NewMoney(100_00, ""),
		LateFeePerDay: vo.NewMoney(20_00, ""),
	}
	r := f.createRequested(t)
	f.approve(t, r.ID())
	f.dispatch(t, r.ID())

	uc := NewReturnRentalUseCase(f.repo, f.assets, f.rates, passthroughTx{}, f.notifier, f.log)
	returned, err := uc.Execute(context.Background(), ReturnRentalCommand{
		RentalID:        r.ID(),
		ConditionRating: vo.ConditionFair,
	})
	require.NoError(t, err)

	assert.Equal(t, vo.StatusReturned, returned.Status())
	assert.Equal(t, vo.AssetAvailable, f.assets.statuses[1])
	require.NotNil(t, returned.TotalAmount())
	assert.True(t, returned.TotalAmount().IsPositive())
	assert.Equal(t, []string{returned.RentalNumber()}, f.notifier.returned)
}

func TestReturnRental_DamageSendsAssetToMaintenance(t *testing.T) {
	f := newFixture(t)
	r := f.createRequested(t)
	f.approve(t, r.ID())
	f.dispatch(t, r.ID())

	desc := "hydraulic leak on boom cylinder"
	uc := NewReturnRentalUseCase(f.repo, f.assets, f.rates, passthroughTx{}, f.notifier, f.log)
	returned, err := uc.Execute(context.Background(), ReturnRentalCommand{
		RentalID:          r.ID(),
		ConditionRating:   vo.ConditionPoor,
		HasDamage:         true,
		DamageDescription: &desc,
	})
	require.NoError(t, err)

	assert.True(t, returned.HasDamage())
	assert.Equal(t, vo.AssetUnderMaintenance, f.assets.statuses[1])
}

func TestCloseRental(t *testing.T) {
	f := newFixture(t)
	r := f.createRequested(t)
	f.approve(t, r.ID())
	f.dispatch(t, r.ID())

	ret := NewReturnRentalUseCase(f.repo, f.assets, f.rates, passthroughTx{}, f.notifier, f.log)
	_, err := ret.Execute(context.Background(), ReturnRentalCommand{
		RentalID:        r.ID(),
		ConditionRating: vo.ConditionGood,
	})
	require.NoError(t, err)

	uc := NewCloseRentalUseCase(f.repo, f.log)
	closed, err := uc.Execute(context.Background(), r.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusClosed, closed.Status())

	// Closing twice conflicts.
	_, err = uc.Execute(context.Background(), r.ID())
	assert.True(t, errors.IsStateConflictError(err))
}

func TestCloseRental_NotFound(t *testing.T) {
	f := newFixture(t)
	uc := NewCloseRentalUseCase(f.repo, f.log)
	_, err := uc.Execute(context.Background(), 404)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestListRentals(t *testing.T) {
	f := newFixture(t)
	f.createRequested(t)
	f.createRequested(t)

	uc := NewListRentalsUseCase(f.repo, f.log)
	rentals, total, err := uc.Execute(context.Background(), ListRentalsQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, rentals, 2)
	assert.Equal(t, int64(2), total)

	bad := vo.RentalStatus("void")
	_, _, err = uc.Execute(context.Background(), ListRentalsQuery{Status: &bad})
	assert.True(t, errors.IsValidationError(err))
}
