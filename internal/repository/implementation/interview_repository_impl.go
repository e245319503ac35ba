package implementation

import (
	"context"
	"errors"
	"time"

	"alignai-be/internal/entity"
	"alignai-be/internal/mapper"
	"alignai-be/internal/model"
	"alignai-be/internal/repository/contract"
	"alignai-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InterviewRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InterviewMapper
}

func NewInterviewRepository(db *gorm.DB) contract.InterviewRepository {
	return &InterviewRepositoryImpl{
		db:     db,
		mapper: mapper.NewInterviewMapper(),
	}
}

func (r *InterviewRepositoryImpl) Create(ctx context.Context, interview *entity.Interview) error {
	m := r.mapper.ToModel(interview)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	questions := interview.Questions
	*interview = *r.mapper.ToEntity(m)
	interview.Questions = questions
	return nil
}

func (r *InterviewRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Interview, error) {
	var m model.Interview
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InterviewRepositoryImpl) FindOneWithQuestions(ctx context.Context, specs ...specification.Specification) (*entity.Interview, error) {
	var m model.Interview
	query := applySpecifications(r.db.WithContext(ctx), specs...).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		})

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InterviewRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interview, error) {
	var models []*model.Interview
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *InterviewRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Interview{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *InterviewRepositoryImpl) Complete(ctx context.Context, id uuid.UUID, completedAt time.Time, feedback string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Interview{}).
		Where("id = ? AND status = ?", id, string(entity.InterviewStatusInProgress)).
		Updates(map[string]interface{}{
			"status":       string(entity.InterviewStatusCompleted),
			"completed_at": completedAt,
			"feedback":     feedback,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *InterviewRepositoryImpl) TransitionStatus(ctx context.Context, id uuid.UUID, from []entity.InterviewStatus, to entity.InterviewStatus) (bool, error) {
	fromStr := make([]string, len(from))
	for i, s := range from {
		fromStr[i] = string(s)
	}

	updates := map[string]interface{}{"status": string(to)}
	if to == entity.InterviewStatusInProgress {
		updates["started_at"] = time.Now()
	}

	res := r.db.WithContext(ctx).Model(&model.Interview{}).
		Where("id = ? AND status IN ?", id, fromStr).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
