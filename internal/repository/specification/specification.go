package specification

import "gorm.io/gorm"

// Specification applies a query constraint to a GORM chain.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
