// Package engine is the seam to the form-authoring runtime. The submission
// pipeline only needs two things from it: answer validation and the finished
// instance payload. Everything else about form interpretation lives upstream.
package engine

import (
	"fmt"

	"formflow-be/internal/dto"
	"formflow-be/internal/entity"
)

type IFormEngine interface {
	// ValidateAnswers re-checks every answer against the session's form logic
	// and returns the failing questions. Empty map means all answers pass.
	ValidateAnswers(session *entity.FormSession, answers map[string]interface{}, skipValidation bool) map[string]dto.ErrorBean
	// InstanceXml renders the finished instance payload for submission.
	InstanceXml(session *entity.FormSession) (string, error)
}

// XFormEngine is a thin adapter over the engine state serialized on the
// session. Required-question ids are carried under "required" in the session
// data; the instance payload is whatever the runtime last serialized.
type XFormEngine struct{}

func NewXFormEngine() IFormEngine {
	return &XFormEngine{}
}

func (e *XFormEngine) ValidateAnswers(session *entity.FormSession, answers map[string]interface{}, skipValidation bool) map[string]dto.ErrorBean {
	errors := make(map[string]dto.ErrorBean)
	if skipValidation {
		return errors
	}

	required, ok := session.SessionData["required"].([]interface{})
	if !ok {
		return errors
	}

	for _, q := range required {
		questionId, ok := q.(string)
		if !ok {
			continue
		}
		answer, present := answers[questionId]
		if !present || answer == nil || answer == "" {
			errors[questionId] = dto.ErrorBean{
				Status: "validation-error",
				Type:   "required",
			}
		}
	}
	return errors
}

func (e *XFormEngine) InstanceXml(session *entity.FormSession) (string, error) {
	if session.InstanceXml == "" {
		return "", fmt.Errorf("session %s has no serialized instance", session.Id)
	}
	return session.InstanceXml, nil
}
