package specification

import (
	"time"

	"gorm.io/gorm"
)

// OwnedBy scopes a query to sessions owned by one user in one domain.
type OwnedBy struct {
	Username string
	Domain   string
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ? AND domain = ?", s.Username, s.Domain)
}

// OlderThan scopes a query to rows created before the cutoff. Used by the
// scheduled purge, never by the submission pipeline.
type OlderThan struct {
	Cutoff time.Time
}

func (s OlderThan) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("date_created < ?", s.Cutoff)
}

// Paginated applies a page window to a listing query. A non-positive Limit
// disables paging and returns the full result set.
type Paginated struct {
	Limit  int
	Offset int
}

func (s Paginated) Apply(db *gorm.DB) *gorm.DB {
	if s.Limit <= 0 {
		return db
	}
	return db.Offset(s.Offset).Limit(s.Limit)
}

// InDomain scopes a query to a single tenant.
type InDomain struct {
	Domain string
}

func (s InDomain) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("domain = ?", s.Domain)
}
