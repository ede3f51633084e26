package models

import (
	"time"

	"rentra/internal/shared/constants"
)

type ClientContactModel struct {
	ID       uint   `gorm:"primarykey"`
	ClientID uint   `gorm:"not null;index"`
	Name     string `gorm:"not null;size:100"`
	Email    string `gorm:"size:255"`
	Phone    string `gorm:"size:32"`

	CanApproveTimesheet bool `gorm:"default:false"`
	CanApproveBilling   bool `gorm:"default:false"`
	ApprovalLimitCents  *int64
	Currency            string `gorm:"not null;size:3"`

	IsPrimary bool `gorm:"default:false"`
	IsActive  bool `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ClientContactModel) TableName() string {
	return constants.TableClientContacts
}
