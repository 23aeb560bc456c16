package implementation

import (
	"context"
	"errors"
	"time"

	"formflow-be/internal/entity"
	"formflow-be/internal/mapper"
	"formflow-be/internal/model"
	"formflow-be/internal/repository/contract"
	"formflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FormSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FormSessionMapper
}

func NewFormSessionRepository(db *gorm.DB) contract.FormSessionRepository {
	return &FormSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewFormSessionMapper(),
	}
}

func (r *FormSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FormSessionRepositoryImpl) GetById(ctx context.Context, id uuid.UUID) (*entity.FormSession, error) {
	var m model.FormSession
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FormSessionRepositoryImpl) Save(ctx context.Context, session *entity.FormSession) error {
	now := time.Now()
	session.DateUpdated = &now
	if session.DateCreated.IsZero() {
		session.DateCreated = now
	}

	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *FormSessionRepositoryImpl) DeleteById(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.FormSession{}, "id = ?", id).Error
}

func (r *FormSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FormSession, error) {
	var models []*model.FormSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("date_created DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]*entity.FormSession, 0, len(models))
	for _, m := range models {
		result = append(result, r.mapper.ToEntity(m))
	}
	return result, nil
}

func (r *FormSessionRepositoryImpl) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Where("date_created < ?", cutoff).Delete(&model.FormSession{})
	return tx.RowsAffected, tx.Error
}
