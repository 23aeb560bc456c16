package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type FormSession struct {
	Id               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username         string     `gorm:"type:text;not null;index"`
	Domain           string     `gorm:"type:text;not null;index"`
	AppId            string     `gorm:"type:text"`
	Title            string     `gorm:"type:text"`
	MenuSessionId    *uuid.UUID `gorm:"type:uuid;index"`
	InstanceXml      string     `gorm:"type:text"`
	SessionData      datatypes.JSON
	PostUrl          string `gorm:"type:text"`
	SubmitStatus     string `gorm:"type:text"`
	SkipValidation   bool   `gorm:"not null;default:false"`
	SuppressAutosync bool   `gorm:"not null;default:false"`
	VolatilityKey    string `gorm:"type:text"`
	DateCreated      time.Time
	DateUpdated      *time.Time
}

func (FormSession) TableName() string {
	return "form_sessions"
}
