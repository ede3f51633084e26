package usecases

import (
	"context"
	"fmt"

	"rentra/internal/domain/rental"
	vo "rentra/internal/domain/rental/valueobjects"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

type ListRentalsQuery struct {
	Status   *vo.RentalStatus
	ClientID *uint
	AssetID  *uint
	Page     int
	PageSize int
}

type ListRentalsUseCase struct {
	rentalRepo rental.Repository
	logger     logger.Interface
}

func NewListRentalsUseCase(rentalRepo rental.Repository, logger logger.Interface) *ListRentalsUseCase {
	return &ListRentalsUseCase{rentalRepo: rentalRepo, logger: logger}
}

func (uc *ListRentalsUseCase) Execute(ctx context.Context, q ListRentalsQuery) ([]*rental.Rental, int64, error) {
	if q.Status != nil && !vo.ValidStatuses[*q.Status] {
		return nil, 0, errors.NewFieldValidationError("status", fmt.Sprintf("unknown status %q", *q.Status))
	}

	rentals, total, err := uc.rentalRepo.List(ctx, rental.Filter{
		Status:   q.Status,
		ClientID: q.ClientID,
		AssetID:  q.AssetID,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list rentals", "error", err)
		return nil, 0, fmt.Errorf("failed to list rentals: %w", err)
	}
	return rentals, total, nil
}

// GetRentalUseCase fetches one rental by ID.
type GetRentalUseCase struct {
	rentalRepo rental.Repository
	logger     logger.Interface
}

func NewGetRentalUseCase(rentalRepo rental.Repository, logger logger.Interface) *GetRentalUseCase {
	return &GetRentalUseCase{rentalRepo: rentalRepo, logger: logger}
}

func (uc *GetRentalUseCase) Execute(ctx context.Context, rentalID uint) (*rental.Rental, error) {
	r, err := uc.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		uc.logger.Errorw("failed to get rental", "error", err, "rental_id", rentalID)
		return nil, fmt.Errorf("failed to get rental: %w", err)
	}
	if r == nil {
		return nil, errors.NewEntityNotFoundError("rental", rentalID)
	}
	return r, nil
}
