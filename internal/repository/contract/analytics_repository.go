package contract

import (
	"context"
	"time"

	"alignai-be/internal/entity"

	"github.com/google/uuid"
)

type AnalyticsRepository interface {
	AverageScore(ctx context.Context, userID uuid.UUID) (*float64, error)
	CategoryStats(ctx context.Context, userID uuid.UUID) ([]entity.CategoryStat, error)
	DailyStats(ctx context.Context, userID uuid.UUID, since time.Time) ([]entity.DailyStat, error)
	WeakQuestions(ctx context.Context, userID uuid.UUID, below float64, limit int) ([]entity.WeakQuestion, error)
	QuestionTypeStats(ctx context.Context, userID uuid.UUID) ([]entity.QuestionTypeStat, error)
}
