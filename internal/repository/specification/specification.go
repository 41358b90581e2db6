package specification

import "gorm.io/gorm"

// Specification composes reusable query filters.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
