package db

import (
	"gorm.io/gorm"
)

// Paginate applies page/page_size offsets to a query. Page and size are
// assumed to be normalized by the caller.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 || pageSize < 1 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
