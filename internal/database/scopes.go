package database

import (
	"gorm.io/gorm"

	"github.com/klsociety/governance-records-api/internal/utils"
)

// Paginate applies offset/limit pagination to a GORM query. A non-positive
// limit leaves the query unbounded so internal callers can opt out.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Limit <= 0 {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
