package dto

import "github.com/google/uuid"

type SubmitRequest struct {
	SessionId    uuid.UUID              `json:"session_id" validate:"required"`
	Answers      map[string]interface{} `json:"answers"`
	Prevalidated bool                   `json:"prevalidated"`

	// Set from the authenticated locals, never from the body.
	Username string `json:"-"`
	Domain   string `json:"-"`
}

// ErrorBean describes one failing answer.
type ErrorBean struct {
	Status string `json:"status"`
	Type   string `json:"type,omitempty"`
}

type NotificationMessage struct {
	Message string `json:"message"`
	IsError bool   `json:"error"`
	Tag     string `json:"tag,omitempty"`
}

// NextScreen is the navigation payload handed back verbatim from the
// navigation resolver. Null when the form was entered outside menu navigation
// or navigation reached a terminal.
type NextScreen struct {
	Type       string   `json:"type"`
	Title      string   `json:"title,omitempty"`
	Selections []string `json:"selections,omitempty"`
	Commands   []string `json:"commands,omitempty"`
}

// SubmitResponse is the sole externally observable artifact of a pipeline run.
// Status travels in the body; the HTTP layer answers 200 either way.
type SubmitResponse struct {
	Status                string               `json:"status"`
	Notification          *NotificationMessage `json:"notification,omitempty"`
	Errors                map[string]ErrorBean `json:"errors,omitempty"`
	SubmitResponseMessage string               `json:"submitResponseMessage,omitempty"`
	NextScreen            *NextScreen          `json:"nextScreen"`
}
