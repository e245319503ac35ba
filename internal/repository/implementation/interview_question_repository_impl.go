package implementation

import (
	"context"

	"alignai-be/internal/entity"
	"alignai-be/internal/mapper"
	"alignai-be/internal/model"
	"alignai-be/internal/repository/contract"
	"alignai-be/internal/repository/specification"

	"gorm.io/gorm"
)

type InterviewQuestionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InterviewMapper
}

func NewInterviewQuestionRepository(db *gorm.DB) contract.InterviewQuestionRepository {
	return &InterviewQuestionRepositoryImpl{
		db:     db,
		mapper: mapper.NewInterviewMapper(),
	}
}

func (r *InterviewQuestionRepositoryImpl) CreateBatch(ctx context.Context, questions []*entity.InterviewQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	models := make([]*model.InterviewQuestion, len(questions))
	for i, q := range questions {
		models[i] = r.mapper.QuestionToModel(q)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*questions[i] = *r.mapper.QuestionToEntity(m)
	}
	return nil
}

func (r *InterviewQuestionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InterviewQuestion, error) {
	var models []*model.InterviewQuestion
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.QuestionsToEntities(models), nil
}
