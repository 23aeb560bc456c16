package mapper

import (
	"formflow-be/internal/entity"
	"formflow-be/internal/model"
)

type CaseMapper struct{}

func NewCaseMapper() *CaseMapper {
	return &CaseMapper{}
}

func (m *CaseMapper) ToEntity(c *model.CaseRecord) *entity.CaseRecord {
	if c == nil {
		return nil
	}

	return &entity.CaseRecord{
		CaseId:         c.CaseId,
		Domain:         c.Domain,
		CaseType:       c.CaseType,
		Name:           c.Name,
		OwnerId:        c.OwnerId,
		Closed:         c.Closed,
		Properties:     jsonToMap(c.Properties),
		ServerModified: c.ServerModified,
	}
}

func (m *CaseMapper) ToModel(c *entity.CaseRecord) *model.CaseRecord {
	if c == nil {
		return nil
	}

	return &model.CaseRecord{
		CaseId:         c.CaseId,
		Domain:         c.Domain,
		CaseType:       c.CaseType,
		Name:           c.Name,
		OwnerId:        c.OwnerId,
		Closed:         c.Closed,
		Properties:     mapToJson(c.Properties),
		ServerModified: c.ServerModified,
	}
}

func (m *CaseMapper) IndexToEntity(i *model.CaseIndex) *entity.CaseIndex {
	if i == nil {
		return nil
	}

	return &entity.CaseIndex{
		Id:           i.Id,
		CaseId:       i.CaseId,
		Domain:       i.Domain,
		Identifier:   i.Identifier,
		TargetId:     i.TargetId,
		Relationship: i.Relationship,
	}
}

func (m *CaseMapper) IndexToModel(i *entity.CaseIndex) *model.CaseIndex {
	if i == nil {
		return nil
	}

	return &model.CaseIndex{
		Id:           i.Id,
		CaseId:       i.CaseId,
		Domain:       i.Domain,
		Identifier:   i.Identifier,
		TargetId:     i.TargetId,
		Relationship: i.Relationship,
	}
}
