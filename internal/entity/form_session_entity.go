package entity

import (
	"time"

	"github.com/google/uuid"
)

// FormSession is one in-progress form fill. Owned by the session store;
// destroyed on successful submission or by the scheduled purge.
type FormSession struct {
	Id               uuid.UUID
	Username         string
	Domain           string
	AppId            string
	Title            string
	MenuSessionId    *uuid.UUID
	InstanceXml      string
	SessionData      map[string]interface{}
	PostUrl          string
	SubmitStatus     string
	SkipValidation   bool
	SuppressAutosync bool
	VolatilityKey    string
	DateCreated      time.Time
	DateUpdated      *time.Time
}
