package usecases

import (
	"context"
	"fmt"

	"rentra/internal/domain/rental"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

type CloseRentalUseCase struct {
	rentalRepo rental.Repository
	logger     logger.Interface
}

func NewCloseRentalUseCase(rentalRepo rental.Repository, logger logger.Interface) *CloseRentalUseCase {
	return &CloseRentalUseCase{rentalRepo: rentalRepo, logger: logger}
}

// Execute finalizes a returned rental after billing settlement.
func (uc *CloseRentalUseCase) Execute(ctx context.Context, rentalID uint) (*rental.Rental, error) {
	r, err := uc.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		uc.logger.Errorw("failed to get rental", "error", err, "rental_id", rentalID)
		return nil, fmt.Errorf("failed to get rental: %w", err)
	}
	if r == nil {
		return nil, errors.NewEntityNotFoundError("rental", rentalID)
	}

	if err := r.Close(); err != nil {
		return nil, err
	}

	if err := uc.rentalRepo.Update(ctx, r); err != nil {
		uc.logger.Errorw("failed to update rental", "error", err, "rental_id", rentalID)
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update rental: %w", err)
	}

	uc.logger.Infow("rental closed", "rental_number", r.RentalNumber())
	return r, nil
}
