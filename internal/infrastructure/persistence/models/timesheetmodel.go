package models

import (
	"time"

	"rentra/internal/shared/constants"
)

// TimesheetModel is the persistence shape of a daily rental timesheet.
// One row per rental per work date.
type TimesheetModel struct {
	ID       uint      `gorm:"primarykey"`
	RentalID uint      `gorm:"not null;uniqueIndex:idx_rental_work_date"`
	WorkDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_rental_work_date"`

	OperatingHours float64 `gorm:"not null;default:0"`
	StandbyHours   float64 `gorm:"not null;default:0"`
	OvertimeHours  float64 `gorm:"not null;default:0"`
	BreakdownHours float64 `gorm:"not null;default:0"`

	HmKmStart float64 `gorm:"not null;default:0"`
	HmKmEnd   float64 `gorm:"not null;default:0"`
	HmKmUsage *float64

	OperationStatus string `gorm:"not null;size:20"`

	CheckerID    *uint
	CheckedAt    *time.Time
	CheckerNotes *string `gorm:"type:text"`

	VerifierID     *uint
	VerifierStatus string `gorm:"not null;size:20;default:pending"`
	VerifierAt     *time.Time
	VerifierNotes  *string `gorm:"type:text"`

	ClientPICID      *uint
	ClientApprovedAt *time.Time
	ClientSignature  *string `gorm:"type:text"`

	Status    string `gorm:"not null;index;size:20"`
	Version   int    `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TimesheetModel) TableName() string {
	return constants.TableTimesheets
}
