package contract

import (
	"context"
	"time"

	"formflow-be/internal/entity"
	"formflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FormSessionRepository interface {
	// GetById returns (nil, nil) when the session does not exist.
	GetById(ctx context.Context, id uuid.UUID) (*entity.FormSession, error)
	Save(ctx context.Context, session *entity.FormSession) error
	DeleteById(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FormSession, error)
	// PurgeOlderThan deletes sessions created before the cutoff and returns the
	// number of rows removed. Invoked only by the scheduled purge job.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
