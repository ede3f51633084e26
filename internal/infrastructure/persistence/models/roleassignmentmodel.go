package models

import (
	"time"

	"rentra/internal/shared/constants"
)

// RoleAssignmentModel grants a role to a user, optionally scoped to one
// organization and optionally time-bounded.
type RoleAssignmentModel struct {
	ID             uint  `gorm:"primarykey"`
	UserID         uint  `gorm:"not null;index"`
	RoleID         uint  `gorm:"not null;index"`
	OrganizationID *uint `gorm:"index"`
	GrantedBy      uint  `gorm:"not null"`
	GrantedAt      time.Time
	ExpiresAt      *time.Time `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (RoleAssignmentModel) TableName() string {
	return constants.TableRoleAssignments
}
