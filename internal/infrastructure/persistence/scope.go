package persistence

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForTenant applies row-level tenant filtering to a query. Every repository
// method that reads or mutates tenant-owned rows goes through this scope.
func ForTenant(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// ExcludeDeleted filters out soft-deleted rows. Tables using this scope carry
// a nullable deleted_at column.
func ExcludeDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// Paginate applies page/page-size windowing to a query
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page > 0 && pageSize > 0 {
			return db.Offset((page - 1) * pageSize).Limit(pageSize)
		}
		return db
	}
}
