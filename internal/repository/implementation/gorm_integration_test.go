package implementation_test

import (
	"context"
	"os"
	"testing"
	"time"

	"alignai-be/internal/entity"
	"alignai-be/internal/model"
	"alignai-be/internal/repository/specification"
	"alignai-be/internal/repository/unitofwork"
	"alignai-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real Postgres when DB_CONNECTION_STRING is set.
func newFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, database.Options{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.InterviewTemplate{}, &model.Interview{}, &model.InterviewQuestion{}, &model.Resume{}))
	return unitofwork.NewRepositoryFactory(db)
}

func TestInterviewLifecycleAgainstPostgres(t *testing.T) {
	f := newFactory(t)
	ctx := context.Background()
	uow := f.NewUnitOfWork(ctx)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        "it-" + uuid.NewString() + "@example.com",
		Username:     "it" + uuid.NewString()[:8],
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, uow.UserRepository().Create(ctx, user))

	now := time.Now().UTC()
	iv := &entity.Interview{
		Id: uuid.New(), UserId: user.Id, Category: "Software", Subcategory: "Data Structures",
		Title: "Stacks vs Queues", Duration: 5, Difficulty: "Easy",
		Status: entity.InterviewStatusInProgress, StartedAt: &now,
	}
	questions := []*entity.InterviewQuestion{
		{Id: uuid.New(), InterviewId: iv.Id, QuestionText: "What is a queue?", QuestionType: entity.QuestionTypeTechnical, OrderIndex: 1},
		{Id: uuid.New(), InterviewId: iv.Id, QuestionText: "What is a stack?", QuestionType: entity.QuestionTypeTechnical, OrderIndex: 0},
	}

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.InterviewRepository().Create(ctx, iv))
	require.NoError(t, uow.InterviewQuestionRepository().CreateBatch(ctx, questions))
	require.NoError(t, uow.Commit())

	t.Run("questions come back ordered", func(t *testing.T) {
		got, err := uow.InterviewRepository().FindOneWithQuestions(ctx, specification.ByID{ID: iv.Id}, specification.UserOwnedBy{UserID: user.Id})
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got.Questions, 2)
		assert.Equal(t, "What is a stack?", got.Questions[0].QuestionText)
	})

	t.Run("complete is a single conditional write", func(t *testing.T) {
		ok, err := uow.InterviewRepository().Complete(ctx, iv.Id, time.Now().UTC(), "Good job.")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = uow.InterviewRepository().Complete(ctx, iv.Id, time.Now().UTC(), "Again.")
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: iv.Id})
		require.NoError(t, err)
		assert.Equal(t, entity.InterviewStatusCompleted, got.Status)
		require.NotNil(t, got.Feedback)
		assert.Equal(t, "Good job.", *got.Feedback)
	})

	t.Run("completed interviews cannot be cancelled", func(t *testing.T) {
		ok, err := uow.InterviewRepository().TransitionStatus(ctx, iv.Id,
			[]entity.InterviewStatus{entity.InterviewStatusScheduled, entity.InterviewStatusInProgress},
			entity.InterviewStatusCancelled)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("analytics queries run", func(t *testing.T) {
		repo := uow.AnalyticsRepository()
		_, err := repo.AverageScore(ctx, user.Id)
		assert.NoError(t, err)
		stats, err := repo.CategoryStats(ctx, user.Id)
		assert.NoError(t, err)
		require.Len(t, stats, 1)
		assert.Equal(t, int64(1), stats[0].Completed)
		_, err = repo.DailyStats(ctx, user.Id, time.Now().AddDate(0, 0, -30))
		assert.NoError(t, err)
		_, err = repo.WeakQuestions(ctx, user.Id, 7, 5)
		assert.NoError(t, err)
		_, err = repo.QuestionTypeStats(ctx, user.Id)
		assert.NoError(t, err)
	})
}
