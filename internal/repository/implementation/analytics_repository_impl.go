package implementation

import (
	"context"
	"database/sql"
	"time"

	"alignai-be/internal/entity"
	"alignai-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalyticsRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) contract.AnalyticsRepository {
	return &AnalyticsRepositoryImpl{db: db}
}

func (r *AnalyticsRepositoryImpl) AverageScore(ctx context.Context, userID uuid.UUID) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).Raw(`
		SELECT AVG(score) FROM interviews
		WHERE user_id = ? AND score IS NOT NULL
	`, userID).Row().Scan(&avg)
	if err != nil || !avg.Valid {
		return nil, err
	}
	return &avg.Float64, nil
}

func (r *AnalyticsRepositoryImpl) CategoryStats(ctx context.Context, userID uuid.UUID) ([]entity.CategoryStat, error) {
	var rows []entity.CategoryStat
	err := r.db.WithContext(ctx).Raw(`
		SELECT category,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed,
			AVG(score) AS average_score,
			MIN(score) AS min_score,
			MAX(score) AS max_score
		FROM interviews
		WHERE user_id = ?
		GROUP BY category
		ORDER BY total DESC
	`, userID).Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepositoryImpl) DailyStats(ctx context.Context, userID uuid.UUID, since time.Time) ([]entity.DailyStat, error) {
	var rows []entity.DailyStat
	err := r.db.WithContext(ctx).Raw(`
		SELECT to_char(created_at, 'YYYY-MM-DD') AS date,
			COUNT(*) AS count,
			AVG(score) AS average_score
		FROM interviews
		WHERE user_id = ? AND created_at >= ?
		GROUP BY date
		ORDER BY date ASC
	`, userID, since).Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepositoryImpl) WeakQuestions(ctx context.Context, userID uuid.UUID, below float64, limit int) ([]entity.WeakQuestion, error) {
	var rows []entity.WeakQuestion
	err := r.db.WithContext(ctx).Raw(`
		SELECT q.question_text, q.question_type, q.score, q.ai_feedback, i.category
		FROM interview_questions q
		JOIN interviews i ON i.id = q.interview_id
		WHERE i.user_id = ? AND q.score IS NOT NULL AND q.score < ?
		ORDER BY q.score ASC
		LIMIT ?
	`, userID, below, limit).Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepositoryImpl) QuestionTypeStats(ctx context.Context, userID uuid.UUID) ([]entity.QuestionTypeStat, error) {
	var rows []entity.QuestionTypeStat
	err := r.db.WithContext(ctx).Raw(`
		SELECT q.question_type, COUNT(*) AS total, AVG(q.score) AS average_score
		FROM interview_questions q
		JOIN interviews i ON i.id = q.interview_id
		WHERE i.user_id = ? AND q.score IS NOT NULL
		GROUP BY q.question_type
	`, userID).Scan(&rows).Error
	return rows, err
}
