package models

import (
	"time"

	"gorm.io/datatypes"

	"rentra/internal/shared/constants"
)

// RentalModel is the persistence shape of the rental aggregate. Money
// columns store minor units; photo lists are JSON arrays. The version
// column backs the optimistic lock.
type RentalModel struct {
	ID           uint   `gorm:"primarykey"`
	RentalNumber string `gorm:"uniqueIndex;not null;size:32"`
	AssetID      uint   `gorm:"not null;index"`
	ClientID     uint   `gorm:"not null;index"`
	Status       string `gorm:"not null;index;size:20"`

	RequestDate     time.Time  `gorm:"not null"`
	StartDate       *time.Time `gorm:"type:date"`
	ExpectedEndDate *time.Time `gorm:"type:date"`
	ActualEndDate   *time.Time `gorm:"type:date"`

	DailyRateCents     *int64
	DepositAmountCents *int64
	PenaltyAmountCents *int64
	TotalAmountCents   *int64
	Currency           string `gorm:"not null;size:3"`
	TotalDays          *int

	Notes        *string `gorm:"type:text"`
	RejectReason *string `gorm:"type:text"`

	DispatchConditionRating *string        `gorm:"size:20"`
	DispatchConditionNotes  *string        `gorm:"type:text"`
	DispatchPhotos          datatypes.JSON `gorm:"type:json"`

	ReturnConditionRating *string        `gorm:"size:20"`
	ReturnConditionNotes  *string        `gorm:"type:text"`
	ReturnPhotos          datatypes.JSON `gorm:"type:json"`
	HasDamage             bool           `gorm:"default:false"`
	DamageDescription     *string        `gorm:"type:text"`
	DamagePhotos          datatypes.JSON `gorm:"type:json"`

	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RentalModel) TableName() string {
	return constants.TableRentals
}
