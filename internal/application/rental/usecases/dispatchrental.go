package usecases

import (
	"context"
	"fmt"

	"rentra/internal/domain/rental"
	vo "rentra/internal/domain/rental/valueobjects"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

type DispatchRentalCommand struct {
	RentalID        uint
	ConditionRating vo.ConditionRating
	ConditionNotes  *string
	Photos          []string
}

type DispatchRentalUseCase struct {
	rentalRepo rental.Repository
	assetPort  rental.AssetStatusPort
	tx         Transactor
	logger     logger.Interface
}

func NewDispatchRentalUseCase(
	rentalRepo rental.Repository,
	assetPort rental.AssetStatusPort,
	tx Transactor,
	logger logger.Interface,
) *DispatchRentalUseCase {
	return &DispatchRentalUseCase{
		rentalRepo: rentalRepo,
		assetPort:  assetPort,
		tx:         tx,
		logger:     logger,
	}
}

// Execute hands the asset over to the client. The asset claim and the
// status change commit in one transaction; a conflict on the asset
// leaves the rental unchanged.
func (uc *DispatchRentalUseCase) Execute(ctx context.Context, cmd DispatchRentalCommand) (*rental.Rental, error) {
	var out *rental.Rental
	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		r, err := uc.rentalRepo.GetByID(txCtx, cmd.RentalID)
		if err != nil {
			return fmt.Errorf("failed to get rental: %w", err)
		}
		if r == nil {
			return errors.NewEntityNotFoundError("rental", cmd.RentalID)
		}

		if err := r.Dispatch(cmd.ConditionRating, cmd.ConditionNotes, cmd.Photos); err != nil {
			return err
		}

		// Claim the asset before persisting the transition; only a
		// dispatchable asset may be taken.
		if err := uc.assetPort.SetStatus(txCtx, r.AssetID(), vo.DispatchableStatuses, vo.AssetRented); err != nil {
			return err
		}

		if err := uc.rentalRepo.Update(txCtx, r); err != nil {
			if errors.IsAppError(err) {
				return err
			}
			return fmt.Errorf("failed to update rental: %w", err)
		}
		out = r
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to dispatch rental", "error", err, "rental_id", cmd.RentalID)
		return nil, err
	}

	uc.logger.Infow("rental dispatched",
		"rental_number", out.RentalNumber(),
		"asset_id", out.AssetID(),
		"condition_rating", cmd.ConditionRating,
	)
	return out, nil
}
