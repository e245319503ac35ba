package implementation

import (
	"context"
	"errors"

	"alignai-be/internal/entity"
	"alignai-be/internal/mapper"
	"alignai-be/internal/model"
	"alignai-be/internal/repository/contract"
	"alignai-be/internal/repository/specification"

	"gorm.io/gorm"
)

type InterviewTemplateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InterviewMapper
}

func NewInterviewTemplateRepository(db *gorm.DB) contract.InterviewTemplateRepository {
	return &InterviewTemplateRepositoryImpl{
		db:     db,
		mapper: mapper.NewInterviewMapper(),
	}
}

func (r *InterviewTemplateRepositoryImpl) Create(ctx context.Context, template *entity.InterviewTemplate) error {
	m := r.mapper.TemplateToModel(template)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*template = *r.mapper.TemplateToEntity(m)
	return nil
}

func (r *InterviewTemplateRepositoryImpl) Update(ctx context.Context, template *entity.InterviewTemplate) error {
	m := r.mapper.TemplateToModel(template)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*template = *r.mapper.TemplateToEntity(m)
	return nil
}

func (r *InterviewTemplateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InterviewTemplate, error) {
	var m model.InterviewTemplate
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TemplateToEntity(&m), nil
}

func (r *InterviewTemplateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InterviewTemplate, error) {
	var models []*model.InterviewTemplate
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.TemplatesToEntities(models), nil
}
