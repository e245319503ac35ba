package implementation

import (
	"context"
	"errors"

	"alignai-be/internal/entity"
	"alignai-be/internal/mapper"
	"alignai-be/internal/model"
	"alignai-be/internal/repository/contract"
	"alignai-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResumeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ResumeMapper
}

func NewResumeRepository(db *gorm.DB) contract.ResumeRepository {
	return &ResumeRepositoryImpl{
		db:     db,
		mapper: mapper.NewResumeMapper(),
	}
}

func (r *ResumeRepositoryImpl) Create(ctx context.Context, resume *entity.Resume) error {
	m := r.mapper.ToModel(resume)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*resume = *r.mapper.ToEntity(m)
	return nil
}

func (r *ResumeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Resume, error) {
	var m model.Resume
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ResumeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Resume, error) {
	var models []*model.Resume
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ResumeRepositoryImpl) MarkProcessed(ctx context.Context, id uuid.UUID, content *string) error {
	return r.db.WithContext(ctx).Model(&model.Resume{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  string(entity.ResumeStatusProcessed),
			"content": content,
		}).Error
}
