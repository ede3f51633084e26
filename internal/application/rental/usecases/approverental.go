package usecases

import (
	"context"
	"fmt"
	"time"

	"rentra/internal/domain/rental"
	vo "rentra/internal/domain/rental/valueobjects"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

type ApproveRentalCommand struct {
	RentalID        uint
	StartDate       time.Time
	ExpectedEndDate time.Time
	DailyRateCents  int64
	DepositCents    *int64
	Currency        string
}

type ApproveRentalUseCase struct {
	rentalRepo rental.Repository
	ratePort   rental.RentalRatePort
	notifier   Notifier
	logger     logger.Interface
}

func NewApproveRentalUseCase(
	rentalRepo rental.Repository,
	ratePort rental.RentalRatePort,
	notifier Notifier,
	logger logger.Interface,
) *ApproveRentalUseCase {
	return &ApproveRentalUseCase{
		rentalRepo: rentalRepo,
		ratePort:   ratePort,
		notifier:   notifier,
		logger:     logger,
	}
}

// Execute approves a requested rental, fixing its period and pricing.
// When a rate applies to the asset, its minimum duration is enforced
// against the approved span. Of two racing approvals exactly one wins;
// the loser gets a concurrency conflict from the version check.
func (uc *ApproveRentalUseCase) Execute(ctx context.Context, cmd ApproveRentalCommand) (*rental.Rental, error) {
	r, err := uc.rentalRepo.GetByID(ctx, cmd.RentalID)
	if err != nil {
		uc.logger.Errorw("failed to get rental", "error", err, "rental_id", cmd.RentalID)
		return nil, fmt.Errorf("failed to get rental: %w", err)
	}
	if r == nil {
		return nil, errors.NewEntityNotFoundError("rental", cmd.RentalID)
	}

	minimumDuration := 0
	assetID := r.AssetID()
	terms, err := uc.ratePort.Lookup(ctx, nil, &assetID)
	if err != nil {
		uc.logger.Errorw("failed to look up rental rate", "error", err, "asset_id", assetID)
		return nil, fmt.Errorf("failed to look up rental rate: %w", err)
	}
	if terms != nil {
		minimumDuration = terms.MinimumDuration
	}

	currency := cmd.Currency
	if currency == "" {
		currency = vo.DefaultCurrency
	}
	dailyRate := vo.NewMoney(cmd.DailyRateCents, currency)
	var deposit *vo.Money
	if cmd.DepositCents != nil {
		m := vo.NewMoney(*cmd.DepositCents, currency)
		deposit = &m
	}

	if err := r.Approve(cmd.StartDate, cmd.ExpectedEndDate, dailyRate, deposit, minimumDuration); err != nil {
		return nil, err
	}

	if err := uc.rentalRepo.Update(ctx, r); err != nil {
		uc.logger.Errorw("failed to update rental", "error", err, "rental_id", cmd.RentalID)
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update rental: %w", err)
	}

	uc.logger.Infow("rental approved",
		"rental_number", r.RentalNumber(),
		"start_date", cmd.StartDate,
		"expected_end_date", cmd.ExpectedEndDate,
	)

	if uc.notifier != nil {
		if err := uc.notifier.RentalApproved(ctx, r); err != nil {
			uc.logger.Warnw("failed to send approval notification", "error", err, "rental_number", r.RentalNumber())
		}
	}
	return r, nil
}
