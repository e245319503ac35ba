package contract

import (
	"context"

	"alignai-be/internal/entity"
	"alignai-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ResumeRepository interface {
	Create(ctx context.Context, resume *entity.Resume) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Resume, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Resume, error)
	MarkProcessed(ctx context.Context, id uuid.UUID, content *string) error
}
