package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"rentra/internal/domain/rental"
	vo "rentra/internal/domain/rental/valueobjects"
	"rentra/internal/infrastructure/persistence/models"
	"rentra/internal/shared/db"
)

type RentalRateAdapter struct {
	db *gorm.DB
}

func NewRentalRateAdapter(gdb *gorm.DB) rental.RentalRatePort {
	return &RentalRateAdapter{db: gdb}
}

func (a *RentalRateAdapter) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, a.db)
}

// Lookup finds the active rate for the asset, falling back to its
// category. Returns (nil, nil) when no rate applies.
func (a *RentalRateAdapter) Lookup(ctx context.Context, categoryID, assetID *uint) (*rental.RateTerms, error) {
	if assetID != nil {
		terms, err := a.lookupBy(ctx, "asset_id = ?", *assetID)
		if err != nil {
			return nil, err
		}
		if terms != nil {
			return terms, nil
		}

		if categoryID == nil {
			var asset models.AssetModel
			err := a.conn(ctx).Select("id", "category_id").First(&asset, *assetID).Error
			if err != nil && err != gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("failed to get asset category: %w", err)
			}
			categoryID = asset.CategoryID
		}
	}

	if categoryID != nil {
		return a.lookupBy(ctx, "category_id = ? AND asset_id IS NULL", *categoryID)
	}
	return nil, nil
}

func (a *RentalRateAdapter) lookupBy(ctx context.Context, cond string, arg any) (*rental.RateTerms, error) {
	var model models.RentalRateModel
	err := a.conn(ctx).
		Where(cond, arg).
		Where("is_active = ?", true).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up rental rate: %w", err)
	}

	return &rental.RateTerms{
		DailyRate:         vo.NewMoney(model.DailyRateCents, model.Currency),
		LateFeePerDay:     vo.NewMoney(model.LateFeePerDayCents, model.Currency),
		MinimumDuration:   model.MinimumDuration,
		DepositPercentage: model.DepositPercentage,
	}, nil
}
