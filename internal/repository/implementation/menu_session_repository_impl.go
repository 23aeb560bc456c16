package implementation

import (
	"context"
	"errors"
	"time"

	"formflow-be/internal/entity"
	"formflow-be/internal/mapper"
	"formflow-be/internal/model"
	"formflow-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MenuSessionMapper
}

func NewMenuSessionRepository(db *gorm.DB) contract.MenuSessionRepository {
	return &MenuSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewMenuSessionMapper(),
	}
}

func (r *MenuSessionRepositoryImpl) GetById(ctx context.Context, id uuid.UUID) (*entity.MenuSession, error) {
	var m model.MenuSession
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MenuSessionRepositoryImpl) Save(ctx context.Context, session *entity.MenuSession) error {
	if session.DateCreated.IsZero() {
		session.DateCreated = time.Now()
	}

	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}
