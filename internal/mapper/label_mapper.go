package mapper

import (
	"time"

	"keepnotes-be/internal/entity"
	"keepnotes-be/internal/model"
)

type LabelMapper struct{}

func NewLabelMapper() *LabelMapper {
	return &LabelMapper{}
}

func (m *LabelMapper) ToEntity(l *model.Label) *entity.Label {
	if l == nil {
		return nil
	}

	var updatedAt *time.Time
	if !l.UpdatedAt.IsZero() {
		t := l.UpdatedAt
		updatedAt = &t
	}

	return &entity.Label{
		Id:        l.Id,
		Name:      l.Name,
		Visible:   l.Visible,
		CreatedAt: l.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *LabelMapper) ToModel(l *entity.Label) *model.Label {
	if l == nil {
		return nil
	}

	var updatedAt time.Time
	if l.UpdatedAt != nil {
		updatedAt = *l.UpdatedAt
	}

	return &model.Label{
		Id:        l.Id,
		Name:      l.Name,
		Visible:   l.Visible,
		CreatedAt: l.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *LabelMapper) ToEntities(labels []*model.Label) []*entity.Label {
	if labels == nil {
		return nil
	}
	entities := make([]*entity.Label, len(labels))
	for i, l := range labels {
		entities[i] = m.ToEntity(l)
	}
	return entities
}

func (m *LabelMapper) ToModels(labels []*entity.Label) []*model.Label {
	if labels == nil {
		return nil
	}
	models := make([]*model.Label, len(labels))
	for i, l := range labels {
		models[i] = m.ToModel(l)
	}
	return models
}
