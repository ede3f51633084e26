package models

import (
	"time"

	"rentra/internal/shared/constants"
)

type RoleModel struct {
	ID        uint   `gorm:"primarykey"`
	Code      string `gorm:"uniqueIndex;not null;size:50"`
	Name      string `gorm:"not null;size:100"`
	RoleLevel int    `gorm:"not null;index"`
	IsSystem  bool   `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RoleModel) TableName() string {
	return constants.TableRoles
}
