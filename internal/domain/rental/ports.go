package rental

import (
	"context"

	vo "rentra/internal/domain/rental/valueobjects"
)

// AssetStatusPort is the narrow contract to the external asset module.
// The rental lifecycle never mutates assets directly; it claims and
// releases them through this port so the two aggregates stay decoupled.
type AssetStatusPort interface {
	// GetStatus returns the current availability status of the asset.
	GetStatus(ctx context.Context, assetID uint) (vo.AssetStatus, error)

	// SetStatus transitions the asset to target iff its current status is
	// one of expected (compare-and-set). Returns an asset conflict error
	// when another workflow holds the asset in a different state, so two
	// concurrent claims cannot silently overwrite each other.
	SetStatus(ctx context.Context, assetID uint, expected []vo.AssetStatus, target vo.AssetStatus) error
}

// RateTerms are the pricing terms applicable to a rental, looked up by
// asset or category.
type RateTerms struct {
	DailyRate         vo.Money
	LateFeePerDay     vo.Money
	MinimumDuration   int
	DepositPercentage int
}

// RentalRatePort looks up pricing terms. Asset-specific rates take
// precedence over category rates. Returns (nil, nil) when no rate
// applies.
type RentalRatePort interface {
	Lookup(ctx context.Context, categoryID, assetID *uint) (*RateTerms, error)
}
