package mapper

import (
	"formflow-be/internal/entity"
	"formflow-be/internal/model"
)

type MenuSessionMapper struct{}

func NewMenuSessionMapper() *MenuSessionMapper {
	return &MenuSessionMapper{}
}

func (m *MenuSessionMapper) ToEntity(s *model.MenuSession) *entity.MenuSession {
	if s == nil {
		return nil
	}

	return &entity.MenuSession{
		Id:               s.Id,
		Username:         s.Username,
		Domain:           s.Domain,
		InstallReference: s.InstallReference,
		Preview:          s.Preview,
		SessionFrame:     jsonToMap(s.SessionFrame),
		DateCreated:      s.DateCreated,
	}
}

func (m *MenuSessionMapper) ToModel(s *entity.MenuSession) *model.MenuSession {
	if s == nil {
		return nil
	}

	return &model.MenuSession{
		Id:               s.Id,
		Username:         s.Username,
		Domain:           s.Domain,
		InstallReference: s.InstallReference,
		Preview:          s.Preview,
		SessionFrame:     mapToJson(s.SessionFrame),
		DateCreated:      s.DateCreated,
	}
}
