package models

import (
	"time"

	"rentra/internal/shared/constants"
)

// RentalRateModel holds pricing terms for a category or a specific
// asset. Asset rates take precedence over category rates.
type RentalRateModel struct {
	ID         uint  `gorm:"primarykey"`
	CategoryID *uint `gorm:"index"`
	AssetID    *uint `gorm:"index"`

	DailyRateCents     int64  `gorm:"not null"`
	LateFeePerDayCents int64  `gorm:"not null;default:0"`
	Currency           string `gorm:"not null;size:3"`
	MinimumDuration    int    `gorm:"not null;default:0"`
	DepositPercentage  int    `gorm:"not null;default:0"`

	IsActive  bool `gorm:"default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RentalRateModel) TableName() string {
	return constants.TableRentalRates
}
