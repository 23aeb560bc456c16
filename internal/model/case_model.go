package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CaseRecord struct {
	CaseId         string `gorm:"type:text;primaryKey"`
	Domain         string `gorm:"type:text;not null;index"`
	CaseType       string `gorm:"type:text;not null"`
	Name           string `gorm:"type:text"`
	OwnerId        string `gorm:"type:text;index"`
	Closed         bool   `gorm:"not null;default:false"`
	Properties     datatypes.JSON
	ServerModified time.Time
}

func (CaseRecord) TableName() string {
	return "case_records"
}

type CaseIndex struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaseId       string    `gorm:"type:text;not null;index"`
	Domain       string    `gorm:"type:text;not null;index"`
	Identifier   string    `gorm:"type:text;not null"`
	TargetId     string    `gorm:"type:text;not null;index"`
	Relationship string    `gorm:"type:text;not null;default:'child'"`
}

func (CaseIndex) TableName() string {
	return "case_indexes"
}
