package mapper

import (
	"alignai-be/internal/entity"
	"alignai-be/internal/model"

	"gorm.io/datatypes"
)

type InterviewMapper struct{}

func NewInterviewMapper() *InterviewMapper {
	return &InterviewMapper{}
}

func (m *InterviewMapper) ToEntity(i *model.Interview) *entity.Interview {
	if i == nil {
		return nil
	}
	e := &entity.Interview{
		Id:          i.Id,
		UserId:      i.UserId,
		Category:    i.Category,
		Subcategory: i.Subcategory,
		Title:       i.Title,
		Duration:    i.Duration,
		Difficulty:  i.Difficulty,
		Status:      entity.InterviewStatus(i.Status),
		Score:       i.Score,
		Feedback:    i.Feedback,
		StartedAt:   i.StartedAt,
		CompletedAt: i.CompletedAt,
		CreatedAt:   i.CreatedAt,
	}
	if len(i.Questions) > 0 {
		e.Questions = make([]*entity.InterviewQuestion, len(i.Questions))
		for idx := range i.Questions {
			e.Questions[idx] = m.QuestionToEntity(&i.Questions[idx])
		}
	}
	return e
}

// ToModel leaves Questions out; they are written through their own repository.
func (m *InterviewMapper) ToModel(i *entity.Interview) *model.Interview {
	if i == nil {
		return nil
	}
	return &model.Interview{
		Id:          i.Id,
		UserId:      i.UserId,
		Category:    i.Category,
		Subcategory: i.Subcategory,
		Title:       i.Title,
		Duration:    i.Duration,
		Difficulty:  i.Difficulty,
		Status:      string(i.Status),
		Score:       i.Score,
		Feedback:    i.Feedback,
		StartedAt:   i.StartedAt,
		CompletedAt: i.CompletedAt,
		CreatedAt:   i.CreatedAt,
	}
}

func (m *InterviewMapper) ToEntities(items []*model.Interview) []*entity.Interview {
	entities := make([]*entity.Interview, len(items))
	for i, item := range items {
		entities[i] = m.ToEntity(item)
	}
	return entities
}

func (m *InterviewMapper) QuestionToEntity(q *model.InterviewQuestion) *entity.InterviewQuestion {
	if q == nil {
		return nil
	}
	return &entity.InterviewQuestion{
		Id:           q.Id,
		InterviewId:  q.InterviewId,
		QuestionText: q.QuestionText,
		QuestionType: entity.QuestionType(q.QuestionType),
		Answer:       q.Answer,
		AiFeedback:   q.AiFeedback,
		Score:        q.Score,
		OrderIndex:   q.OrderIndex,
		CreatedAt:    q.CreatedAt,
	}
}

func (m *InterviewMapper) QuestionToModel(q *entity.InterviewQuestion) *model.InterviewQuestion {
	if q == nil {
		return nil
	}
	return &model.InterviewQuestion{
		Id:           q.Id,
		InterviewId:  q.InterviewId,
		QuestionText: q.QuestionText,
		QuestionType: string(q.QuestionType),
		Answer:       q.Answer,
		AiFeedback:   q.AiFeedback,
		Score:        q.Score,
		OrderIndex:   q.OrderIndex,
		CreatedAt:    q.CreatedAt,
	}
}

func (m *InterviewMapper) QuestionsToEntities(items []*model.InterviewQuestion) []*entity.InterviewQuestion {
	entities := make([]*entity.InterviewQuestion, len(items))
	for i, item := range items {
		entities[i] = m.QuestionToEntity(item)
	}
	return entities
}

func (m *InterviewMapper) TemplateToEntity(t *model.InterviewTemplate) *entity.InterviewTemplate {
	if t == nil {
		return nil
	}
	questions := make([]string, len(t.Questions))
	copy(questions, t.Questions)
	return &entity.InterviewTemplate{
		Id:          t.Id,
		Category:    t.Category,
		Subcategory: t.Subcategory,
		Title:       t.Title,
		Description: t.Description,
		Duration:    t.Duration,
		Difficulty:  t.Difficulty,
		Questions:   questions,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
	}
}

func (m *InterviewMapper) TemplateToModel(t *entity.InterviewTemplate) *model.InterviewTemplate {
	if t == nil {
		return nil
	}
	return &model.InterviewTemplate{
		Id:          t.Id,
		Category:    t.Category,
		Subcategory: t.Subcategory,
		Title:       t.Title,
		Description: t.Description,
		Duration:    t.Duration,
		Difficulty:  t.Difficulty,
		Questions:   datatypes.JSONSlice[string](t.Questions),
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
	}
}

func (m *InterviewMapper) TemplatesToEntities(items []*model.InterviewTemplate) []*entity.InterviewTemplate {
	entities := make([]*entity.InterviewTemplate, len(items))
	for i, item := range items {
		entities[i] = m.TemplateToEntity(item)
	}
	return entities
}
