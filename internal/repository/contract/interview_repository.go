package contract

import (
	"context"
	"time"

	"alignai-be/internal/entity"
	"alignai-be/internal/repository/specification"

	"github.com/google/uuid"
)

type InterviewRepository interface {
	Create(ctx context.Context, interview *entity.Interview) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Interview, error)
	FindOneWithQuestions(ctx context.Context, specs ...specification.Specification) (*entity.Interview, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interview, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Complete is the single terminal write: it only matches a row that is
	// still in_progress and reports whether it did.
	Complete(ctx context.Context, id uuid.UUID, completedAt time.Time, feedback string) (bool, error)
	// TransitionStatus moves id to `to` if its current status is one of `from`.
	TransitionStatus(ctx context.Context, id uuid.UUID, from []entity.InterviewStatus, to entity.InterviewStatus) (bool, error)
}

type InterviewQuestionRepository interface {
	CreateBatch(ctx context.Context, questions []*entity.InterviewQuestion) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InterviewQuestion, error)
}

type InterviewTemplateRepository interface {
	Create(ctx context.Context, template *entity.InterviewTemplate) error
	Update(ctx context.Context, template *entity.InterviewTemplate) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InterviewTemplate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InterviewTemplate, error)
}
