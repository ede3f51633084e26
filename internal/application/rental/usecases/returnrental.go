package usecases

import (
	"context"
	"fmt"

	"rentra/internal/domain/rental"
	vo "rentra/internal/domain/rental/valueobjects"
	"rentra/internal/shared/biztime"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

type ReturnRentalCommand struct {
	RentalID          uint
	ConditionRating   vo.ConditionRating
	ConditionNotes    *string
	Photos            []string
	HasDamage         bool
	DamageDescription *string
	DamagePhotos      []string
}

type ReturnRentalUseCase struct {
	rentalRepo rental.Repository
	assetPort  rental.AssetStatusPort
	ratePort   rental.RentalRatePort
	tx         Transactor
	notifier   Notifier
	logger     logger.Interface
}

func NewReturnRentalUseCase(
	rentalRepo rental.Repository,
	assetPort rental.AssetStatusPort,
	ratePort rental.RentalRatePort,
	tx Transactor,
	notifier Notifier,
	logger logger.Interface,
) *ReturnRentalUseCase {
	return &ReturnRentalUseCase{
		rentalRepo: rentalRepo,
		assetPort:  assetPort,
		ratePort:   ratePort,
		tx:         tx,
		notifier:   notifier,
		logger:     logger,
	}
}

// Execute takes the asset back and settles the rental. The settlement
// write and the asset release commit in one transaction. A damaged
// asset goes to maintenance instead of back to the available pool.
func (uc *ReturnRentalUseCase) Execute(ctx context.Context, cmd ReturnRentalCommand) (*rental.Rental, error) {
	var out *rental.Rental
	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		r, err := uc.rentalRepo.GetByID(txCtx, cmd.RentalID)
		if err != nil {
			return fmt.Errorf("failed to get rental: %w", err)
		}
		if r == nil {
			return errors.NewEntityNotFoundError("rental", cmd.RentalID)
		}

		assetID := r.AssetID()
		terms, err := uc.ratePort.Lookup(txCtx, nil, &assetID)
		if err != nil {
			return fmt.Errorf("failed to look up rental rate: %w", err)
		}

		if err := r.Return(rental.ReturnParams{
			ActualEndDate:     biztime.NowUTC(),
			ConditionRating:   cmd.ConditionRating,
			ConditionNotes:    cmd.ConditionNotes,
			Photos:            cmd.Photos,
			HasDamage:         cmd.HasDamage,
			DamageDescription: cmd.DamageDescription,
			DamagePhotos:      cmd.DamagePhotos,
		}, terms); err != nil {
			return err
		}

		if err := uc.assetPort.SetStatus(txCtx, r.AssetID(),
			[]vo.AssetStatus{vo.AssetRented}, r.ReturnTargetAssetStatus()); err != nil {
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
		uc.logger.Errorw("failed to return rental", "error", err, "rental_id", cmd.RentalID)
		return nil, err
	}

	uc.logger.Infow("rental returned",
		"rental_number", out.RentalNumber(),
		"total_days", *out.TotalDays(),
		"total_amount", out.TotalAmount().String(),
		"has_damage", cmd.HasDamage,
	)

	if uc.notifier != nil {
		if err := uc.notifier.RentalReturned(ctx, out); err != nil {
			uc.logger.Warnw("failed to send return notification", "error", err, "rental_number", out.RentalNumber())
		}
	}
	return out, nil
}
