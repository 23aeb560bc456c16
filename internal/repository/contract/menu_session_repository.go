package contract

import (
	"context"

	"formflow-be/internal/entity"

	"github.com/google/uuid"
)

type MenuSessionRepository interface {
	// GetById returns (nil, nil) when the session does not exist.
	GetById(ctx context.Context, id uuid.UUID) (*entity.MenuSession, error)
	Save(ctx context.Context, session *entity.MenuSession) error
}
