package entity

import (
	"time"

	"github.com/google/uuid"
)

// CaseRecord is one structured record extracted from a submitted instance.
type CaseRecord struct {
	CaseId         string
	Domain         string
	CaseType       string
	Name           string
	OwnerId        string
	Closed         bool
	Properties     map[string]interface{}
	ServerModified time.Time
}

// CaseIndex is a directed reference from one case to another. The index graph
// must stay acyclic; the record processor rejects mutations that would close a
// cycle.
type CaseIndex struct {
	Id           uuid.UUID
	CaseId       string
	Domain       string
	Identifier   string
	TargetId     string
	Relationship string
}
