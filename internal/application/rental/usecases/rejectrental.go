package usecases

import (
	"context"
	"fmt"

	"rentra/internal/domain/rental"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

type RejectRentalCommand struct {
	RentalID uint
	Reason   string
}

type RejectRentalUseCase struct {
	rentalRepo rental.Repository
	notifier   Notifier
	logger     logger.Interface
}

func NewRejectRentalUseCase(
	rentalRepo rental.Repository,
	notifier Notifier,
	logger logger.Interface,
) *RejectRentalUseCase {
	return &RejectRentalUseCase{
		rentalRepo: rentalRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// Execute rejects a requested rental with a reason. Terminal.
func (uc *RejectRentalUseCase) Execute(ctx context.Context, cmd RejectRentalCommand) (*rental.Rental, error) {
	r, err := uc.rentalRepo.GetByID(ctx, cmd.RentalID)
	if err != nil {
		uc.logger.Errorw("failed to get rental", "error", err, "rental_id", cmd.RentalID)
		return nil, fmt.Errorf("failed to get rental: %w", err)
	}
	if r == nil {
		return nil, errors.NewEntityNotFoundError("rental", cmd.RentalID)
	}

	if err := r.Reject(cmd.Reason); err != nil {
		return nil, err
	}

	if err := uc.rentalRepo.Update(ctx, r); err != nil {
		uc.logger.Errorw("failed to update rental", "error", err, "rental_id", cmd.RentalID)
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update rental: %w", err)
	}

	uc.logger.Infow("rental rejected", "rental_number", r.RentalNumber(), "reason", cmd.Reason)

	if uc.notifier != nil {
		if err := uc.notifier.RentalRejected(ctx, r); err != nil {
			uc.logger.Warnw("failed to send rejection notification", "error", err, "rental_number", r.RentalNumber())
		}
	}
	return r, nil
}
