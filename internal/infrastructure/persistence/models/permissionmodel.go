package models

import (
	"time"

	"rentra/internal/shared/constants"
)

type PermissionModel struct {
	ID        uint   `gorm:"primarykey"`
	Resource  string `gorm:"not null;size:50;uniqueIndex:idx_resource_action"`
	Action    string `gorm:"not null;size:50;uniqueIndex:idx_resource_action"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PermissionModel) TableName() string {
	return constants.TablePermissions
}
