package scope

import "gorm.io/gorm"

// WithTrashed includes soft-deleted rows, which GORM's default scope hides.
func WithTrashed(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}