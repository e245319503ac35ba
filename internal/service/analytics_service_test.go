package service

import (
	"context"
	"testing"
	"time"

	"alignai-be/internal/entity"
	"alignai-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func newAnalytics(db *memDB, now time.Time) *analyticsService {
	return &analyticsService{uowFactory: db, now: func() time.Time { return now }}
}

func TestDashboard(t *testing.T) {
	db := newMemDB()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	add := func(status entity.InterviewStatus, age time.Duration) {
		id := uuid.New()
		db.interviews[id] = &entity.Interview{Id: id, UserId: userID, Status: status, CreatedAt: now.Add(-age)}
	}
	add(entity.InterviewStatusCompleted, time.Hour)
	add(entity.InterviewStatusCompleted, 60*24*time.Hour)
	add(entity.InterviewStatusInProgress, time.Hour)
	other := uuid.New()
	db.interviews[other] = &entity.Interview{Id: other, UserId: uuid.New(), Status: entity.InterviewStatusCompleted, CreatedAt: now}

	db.avgScore = f64(7.456)
	db.categories = []entity.CategoryStat{{Category: "Software", Total: 3, Completed: 2, AverageScore: f64(7.456)}}

	resp, err := newAnalytics(db, now).Dashboard(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalInterviews)
	assert.Equal(t, int64(2), resp.CompletedInterviews)
	assert.Equal(t, 66.67, resp.CompletionRate)
	assert.Equal(t, 7.46, resp.AverageScore)
	assert.Equal(t, int64(2), resp.RecentInterviews)
	require.Len(t, resp.CategoryBreakdown, 1)
	assert.Equal(t, int64(3), resp.CategoryBreakdown[0].Count)
}

func TestDashboardEmpty(t *testing.T) {
	resp, err := newAnalytics(newMemDB(), time.Now()).Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, resp.CompletionRate)
	assert.Zero(t, resp.AverageScore)
	assert.NotNil(t, resp.CategoryBreakdown)
}

func TestPerformanceTrendsWindow(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		days      int
		wantSince time.Time
		wantErr   bool
	}{
		{"default", 0, now.AddDate(0, 0, -30), false},
		{"custom", 7, now.AddDate(0, 0, -7), false},
		{"too long", 400, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newMemDB()
			db.daily = []entity.DailyStat{{Date: "2024-05-30", Count: 2, AverageScore: f64(8.125)}}

			resp, err := newAnalytics(db, now).PerformanceTrends(context.Background(), uuid.New(), tt.days)
			if tt.wantErr {
				assert.Equal(t, fiber.StatusBadRequest, serverutils.StatusOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSince, db.dailySince)
			require.Len(t, resp.Trends, 1)
			assert.Equal(t, 8.13, resp.Trends[0].AvgScore)
		})
	}
}

func TestCategoryPerformanceAndImprovementAreas(t *testing.T) {
	db := newMemDB()
	db.categories = []entity.CategoryStat{{Category: "Software", Total: 4, Completed: 1, AverageScore: nil, MinScore: f64(3), MaxScore: f64(9)}}
	db.weak = []entity.WeakQuestion{{QuestionText: "What is a heap?", QuestionType: "technical", Score: 4.5, Category: "Software"}}
	db.typeStats = []entity.QuestionTypeStat{{QuestionType: "technical", Total: 3, AverageScore: f64(6.333)}}
	svc := newAnalytics(db, time.Now())

	cats, err := svc.CategoryPerformance(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, cats.Categories, 1)
	assert.Equal(t, 25.0, cats.Categories[0].CompletionRate)
	assert.Zero(t, cats.Categories[0].AvgScore)

	areas, err := svc.ImprovementAreas(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, areas.ImprovementAreas, 1)
	assert.Equal(t, "What is a heap?", areas.ImprovementAreas[0].QuestionText)
	assert.Equal(t, 6.33, areas.QuestionTypePerformance[0].AvgScore)
}
