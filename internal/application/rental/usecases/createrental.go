package usecases

import (
	"context"
	"fmt"
	"time"

	"rentra/internal/domain/rental"
	vo "rentra/internal/domain/rental/valueobjects"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/id"
	"rentra/internal/shared/logger"
)

type CreateRentalCommand struct {
	AssetID         uint
	ClientID        uint
	StartDate       *time.Time
	ExpectedEndDate *time.Time
	DailyRateCents  *int64
	DepositCents    *int64
	Currency        string
	Notes           *string
}

type CreateRentalUseCase struct {
	rentalRepo rental.Repository
	assetPort  rental.AssetStatusPort
	logger     logger.Interface
}

func NewCreateRentalUseCase(
	rentalRepo rental.Repository,
	assetPort rental.AssetStatusPort,
	logger logger.Interface,
) *CreateRentalUseCase {
	return &CreateRentalUseCase{
		rentalRepo: rentalRepo,
		assetPort:  assetPort,
		logger:     logger,
	}
}

// Execute creates a rental request for an existing asset. The asset is
// not reserved yet; it is claimed at dispatch.
func (uc *CreateRentalUseCase) Execute(ctx context.Context, cmd CreateRentalCommand) (*rental.Rental, error) {
	if _, err := uc.assetPort.GetStatus(ctx, cmd.AssetID); err != nil {
		uc.logger.Errorw("failed to check asset", "error", err, "asset_id", cmd.AssetID)
		return nil, err
	}

	currency := cmd.Currency
	if currency == "" {
		currency = vo.DefaultCurrency
	}
	var dailyRate, deposit *vo.Money
	if cmd.DailyRateCents != nil {
		m := vo.NewMoney(*cmd.DailyRateCents, currency)
		dailyRate = &m
	}
	if cmd.DepositCents != nil {
		m := vo.NewMoney(*cmd.DepositCents, currency)
		deposit = &m
	}

	rentalNumber, err := id.NewRentalNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate rental number: %w", err)
	}

	r, err := rental.NewRental(rental.NewRentalParams{
		RentalNumber:    rentalNumber,
		AssetID:         cmd.AssetID,
		ClientID:        cmd.ClientID,
		StartDate:       cmd.StartDate,
		ExpectedEndDate: cmd.ExpectedEndDate,
		DailyRate:       dailyRate,
		DepositAmount:   deposit,
		Notes:           cmd.Notes,
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.rentalRepo.Create(ctx, r); err != nil {
		uc.logger.Errorw("failed to create rental", "error", err, "asset_id", cmd.AssetID)
		return nil, fmt.Errorf("failed to create rental: %w", err)
	}

	uc.logger.Infow("rental requested",
		"rental_number", r.RentalNumber(),
		"asset_id", cmd.AssetID,
		"client_id", cmd.ClientID,
	)
	return r, nil
}
