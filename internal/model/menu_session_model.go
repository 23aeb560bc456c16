package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MenuSession struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username         string    `gorm:"type:text;not null;index"`
	Domain           string    `gorm:"type:text;not null;index"`
	InstallReference string    `gorm:"type:text"`
	Preview          bool      `gorm:"not null;default:false"`
	SessionFrame     datatypes.JSON
	DateCreated      time.Time
}

func (MenuSession) TableName() string {
	return "menu_sessions"
}
