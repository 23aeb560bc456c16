package mapper

import (
	"encoding/json"

	"formflow-be/internal/entity"
	"formflow-be/internal/model"

	"gorm.io/datatypes"
)

type FormSessionMapper struct{}

func NewFormSessionMapper() *FormSessionMapper {
	return &FormSessionMapper{}
}

func (m *FormSessionMapper) ToEntity(s *model.FormSession) *entity.FormSession {
	if s == nil {
		return nil
	}

	return &entity.FormSession{
		Id:               s.Id,
		Username:         s.Username,
		Domain:           s.Domain,
		AppId:            s.AppId,
		Title:            s.Title,
		MenuSessionId:    s.MenuSessionId,
		InstanceXml:      s.InstanceXml,
		SessionData:      jsonToMap(s.SessionData),
		PostUrl:          s.PostUrl,
		SubmitStatus:     s.SubmitStatus,
		SkipValidation:   s.SkipValidation,
		SuppressAutosync: s.SuppressAutosync,
		VolatilityKey:    s.VolatilityKey,
		DateCreated:      s.DateCreated,
		DateUpdated:      s.DateUpdated,
	}
}

func (m *FormSessionMapper) ToModel(s *entity.FormSession) *model.FormSession {
	if s == nil {
		return nil
	}

	return &model.FormSession{
		Id:               s.Id,
		Username:         s.Username,
		Domain:           s.Domain,
		AppId:            s.AppId,
		Title:            s.Title,
		MenuSessionId:    s.MenuSessionId,
		InstanceXml:      s.InstanceXml,
		SessionData:      mapToJson(s.SessionData),
		PostUrl:          s.PostUrl,
		SubmitStatus:     s.SubmitStatus,
		SkipValidation:   s.SkipValidation,
		SuppressAutosync: s.SuppressAutosync,
		VolatilityKey:    s.VolatilityKey,
		DateCreated:      s.DateCreated,
		DateUpdated:      s.DateUpdated,
	}
}

// jsonToMap tolerates malformed stored JSON by returning an empty map; the
// engine state is opaque to this service.
func jsonToMap(data datatypes.JSON) map[string]interface{} {
	result := make(map[string]interface{})
	if len(data) == 0 {
		return result
	}
	_ = json.Unmarshal(data, &result)
	return result
}

func mapToJson(data map[string]interface{}) datatypes.JSON {
	if data == nil {
		return datatypes.JSON("{}")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(raw)
}
