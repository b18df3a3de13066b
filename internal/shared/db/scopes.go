package db

import (
	"gorm.io/gorm"
)

// Paginate limits a query to one page. A zero page or pageSize leaves the
// query untouched so callers can list everything.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 || pageSize <= 0 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// WhereIfSet adds an equality condition only when value is non-empty.
//
// Example usage:
//
//	db.Table("repair_requests r").Scopes(db.WhereIfSet("r.status", status)).Find(&rows)
func WhereIfSet(column string, value string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

// WhereIDIfSet is WhereIfSet for id columns.
func WhereIDIfSet(column string, value *uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == nil {
			return db
		}
		return db.Where(column+" = ?", *value)
	}
}
