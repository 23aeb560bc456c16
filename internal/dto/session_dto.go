package dto

import (
	"time"

	"github.com/google/uuid"
)

type SessionSummary struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	AppId       string    `json:"app_id,omitempty"`
	DateCreated time.Time `json:"date_created"`
}

type ListSessionsResponse struct {
	Sessions []SessionSummary `json:"sessions"`
}

type GetSessionResponse struct {
	Id               uuid.UUID              `json:"id"`
	Title            string                 `json:"title"`
	AppId            string                 `json:"app_id,omitempty"`
	MenuSessionId    *uuid.UUID             `json:"menu_session_id,omitempty"`
	SessionData      map[string]interface{} `json:"session_data"`
	SubmitStatus     string                 `json:"submit_status,omitempty"`
	SuppressAutosync bool                   `json:"suppress_autosync"`
	DateCreated      time.Time              `json:"date_created"`
	DateUpdated      *time.Time             `json:"date_updated,omitempty"`
}
