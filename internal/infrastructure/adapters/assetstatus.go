// Package adapters implements the rental domain ports against the
// asset and rate tables.
package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"rentra/internal/domain/rental"
	vo "rentra/internal/domain/rental/valueobjects"
	"rentra/internal/infrastructure/persistence/models"
	"rentra/internal/shared/db"
	"rentra/internal/shared/errors"
)

type AssetStatusAdapter struct {
	db *gorm.DB
}

func NewAssetStatusAdapter(gdb *gorm.DB) rental.AssetStatusPort {
	return &AssetStatusAdapter{db: gdb}
}

func (a *AssetStatusAdapter) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, a.db)
}

func (a *AssetStatusAdapter) GetStatus(ctx context.Context, assetID uint) (vo.AssetStatus, error) {
	var model models.AssetModel
	if err := a.conn(ctx).Select("id", "status").First(&model, assetID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.NewEntityNotFoundError("asset", assetID)
		}
		return "", fmt.Errorf("failed to get asset status: %w", err)
	}
	return vo.AssetStatus(model.Status), nil
}

// SetStatus is a single-statement compare-and-set: the UPDATE only
// matches when the current status is one of the expected ones, so two
// concurrent claims on the same asset cannot both succeed.
func (a *AssetStatusAdapter) SetStatus(ctx context.Context, assetID uint, expected []vo.AssetStatus, target vo.AssetStatus) error {
	expectedStrings := make([]string, 0, len(expected))
	for _, s := range expected {
		expectedStrings = append(expectedStrings, s.String())
	}

	result := a.conn(ctx).Model(&models.AssetModel{}).
		Where("id = ? AND status IN ?", assetID, expectedStrings).
		Update("status", target.String())
	if result.Error != nil {
		return fmt.Errorf("failed to update asset status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		current, err := a.GetStatus(ctx, assetID)
		if err != nil {
			return err
		}
		return errors.NewAssetConflictError("asset is not in a required status",
			fmt.Sprintf("asset_id=%d current=%s target=%s", assetID, current, target))
	}
	return nil
}
