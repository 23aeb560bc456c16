package implementation

import (
	"context"
	"errors"

	"formflow-be/internal/entity"
	"formflow-be/internal/mapper"
	"formflow-be/internal/model"
	"formflow-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CaseMapper
}

func NewCaseRepository(db *gorm.DB) contract.CaseRepository {
	return &CaseRepositoryImpl{
		db:     db,
		mapper: mapper.NewCaseMapper(),
	}
}

func (r *CaseRepositoryImpl) Get(ctx context.Context, caseId string) (*entity.CaseRecord, error) {
	var m model.CaseRecord
	if err := r.db.WithContext(ctx).First(&m, "case_id = ?", caseId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CaseRepositoryImpl) Save(ctx context.Context, c *entity.CaseRecord) error {
	m := r.mapper.ToModel(c)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*c = *r.mapper.ToEntity(m)
	return nil
}

func (r *CaseRepositoryImpl) Delete(ctx context.Context, caseId string) error {
	if err := r.db.WithContext(ctx).Delete(&model.CaseIndex{}, "case_id = ?", caseId).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&model.CaseRecord{}, "case_id = ?", caseId).Error
}

func (r *CaseRepositoryImpl) ListByDomain(ctx context.Context, domain string) ([]*entity.CaseRecord, error) {
	var models []*model.CaseRecord
	if err := r.db.WithContext(ctx).Find(&models, "domain = ?", domain).Error; err != nil {
		return nil, err
	}

	result := make([]*entity.CaseRecord, 0, len(models))
	for _, m := range models {
		result = append(result, r.mapper.ToEntity(m))
	}
	return result, nil
}

func (r *CaseRepositoryImpl) ListIndexesByDomain(ctx context.Context, domain string) ([]*entity.CaseIndex, error) {
	var models []*model.CaseIndex
	if err := r.db.WithContext(ctx).Find(&models, "domain = ?", domain).Error; err != nil {
		return nil, err
	}

	result := make([]*entity.CaseIndex, 0, len(models))
	for _, m := range models {
		result = append(result, r.mapper.IndexToEntity(m))
	}
	return result, nil
}

func (r *CaseRepositoryImpl) ReplaceIndexes(ctx context.Context, caseId string, indexes []*entity.CaseIndex) error {
	if err := r.DeleteIndexesFor(ctx, caseId); err != nil {
		return err
	}
	for _, idx := range indexes {
		if idx.Id == uuid.Nil {
			idx.Id = uuid.New()
		}
		m := r.mapper.IndexToModel(idx)
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *CaseRepositoryImpl) DeleteIndexesFor(ctx context.Context, caseId string) error {
	return r.db.WithContext(ctx).Delete(&model.CaseIndex{}, "case_id = ?", caseId).Error
}
