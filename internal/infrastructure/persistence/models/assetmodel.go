package models

import (
	"time"

	"rentra/internal/shared/constants"
)

// AssetModel carries the columns of the asset table the rental workflow
// touches: the status that dispatch claims and return releases, plus
// identity fields for listings.
type AssetModel struct {
	ID         uint   `gorm:"primarykey"`
	AssetCode  string `gorm:"uniqueIndex;not null;size:32"`
	Name       string `gorm:"not null;size:255"`
	CategoryID *uint  `gorm:"index"`
	Status     string `gorm:"not null;index;size:20"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (AssetModel) TableName() string {
	return constants.TableAssets
}
