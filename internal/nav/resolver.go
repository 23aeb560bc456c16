// Package nav resolves what the client should see after a successful
// submission, from the menu session the form was entered through.
package nav

import (
	"context"

	"formflow-be/internal/dto"
	"formflow-be/internal/entity"
	"formflow-be/internal/pkg/logger"
)

type IResolver interface {
	// ResolveNext rebuilds the navigation state and returns the next screen, or
	// nil when navigation has reached a terminal. The payload is handed back to
	// the client verbatim.
	ResolveNext(ctx context.Context, menuSession *entity.MenuSession) (*dto.NextScreen, error)
}

type Resolver struct {
	logger logger.ILogger
}

func NewResolver(logger logger.ILogger) IResolver {
	return &Resolver{logger: logger}
}

func (r *Resolver) ResolveNext(ctx context.Context, menuSession *entity.MenuSession) (*dto.NextScreen, error) {
	frame := parseFrame(menuSession.SessionFrame)

	// The last step is the form that was just submitted; pop it and inspect
	// what remains of the navigation stack.
	if len(frame.Steps) > 0 {
		frame.Steps = frame.Steps[:len(frame.Steps)-1]
	}

	if len(frame.Steps) == 0 {
		r.logger.Debug("nav", "navigation stack empty after form, returning to home", map[string]interface{}{
			"menu_session_id": menuSession.Id,
		})
		return nil, nil
	}

	selections := make([]string, 0, len(frame.Steps))
	for _, step := range frame.Steps {
		selections = append(selections, step.Value)
	}

	return &dto.NextScreen{
		Type:       "menu",
		Title:      frame.Title,
		Selections: selections,
	}, nil
}

type frameStep struct {
	Type  string
	Value string
}

type sessionFrame struct {
	Title string
	Steps []frameStep
}

// parseFrame tolerates partially populated frames; a menu session with no
// steps simply resolves to the terminal.
func parseFrame(raw map[string]interface{}) sessionFrame {
	frame := sessionFrame{}
	if raw == nil {
		return frame
	}

	if title, ok := raw["title"].(string); ok {
		frame.Title = title
	}

	steps, ok := raw["steps"].([]interface{})
	if !ok {
		return frame
	}
	for _, s := range steps {
		stepMap, ok := s.(map[string]interface{})
		if !ok {
			continue
		}
		step := frameStep{}
		if t, ok := stepMap["type"].(string); ok {
			step.Type = t
		}
		if v, ok := stepMap["value"].(string); ok {
			step.Value = v
		}
		frame.Steps = append(frame.Steps, step)
	}
	return frame
}
