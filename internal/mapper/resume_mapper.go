package mapper

import (
	"encoding/json"

	"alignai-be/internal/entity"
	"alignai-be/internal/model"

	"gorm.io/datatypes"
)

type ResumeMapper struct{}

func NewResumeMapper() *ResumeMapper {
	return &ResumeMapper{}
}

func emptyListIfNil(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("[]")
	}
	return raw
}

func (m *ResumeMapper) ToEntity(r *model.Resume) *entity.Resume {
	if r == nil {
		return nil
	}
	return &entity.Resume{
		Id:          r.Id,
		UserId:      r.UserId,
		FilePath:    r.FilePath,
		ContentType: r.ContentType,
		Content:     r.Content,
		Skills:      json.RawMessage(emptyListIfNil(r.Skills)),
		Experience:  json.RawMessage(emptyListIfNil(r.Experience)),
		Education:   json.RawMessage(emptyListIfNil(r.Education)),
		Status:      entity.ResumeStatus(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

func (m *ResumeMapper) ToModel(r *entity.Resume) *model.Resume {
	if r == nil {
		return nil
	}
	return &model.Resume{
		Id:          r.Id,
		UserId:      r.UserId,
		FilePath:    r.FilePath,
		ContentType: r.ContentType,
		Content:     r.Content,
		Skills:      datatypes.JSON(emptyListIfNil(r.Skills)),
		Experience:  datatypes.JSON(emptyListIfNil(r.Experience)),
		Education:   datatypes.JSON(emptyListIfNil(r.Education)),
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

func (m *ResumeMapper) ToEntities(items []*model.Resume) []*entity.Resume {
	entities := make([]*entity.Resume, len(items))
	for i, item := range items {
		entities[i] = m.ToEntity(item)
	}
	return entities
}
