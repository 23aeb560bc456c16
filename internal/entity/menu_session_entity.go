package entity

import (
	"time"

	"github.com/google/uuid"
)

// MenuSession is the navigation/install context a form was entered from.
// Read-only from the submission pipeline's perspective.
type MenuSession struct {
	Id               uuid.UUID
	Username         string
	Domain           string
	InstallReference string
	Preview          bool
	SessionFrame     map[string]interface{}
	DateCreated      time.Time
}
