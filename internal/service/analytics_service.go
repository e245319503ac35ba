package service

import (
	"context"
	"math"
	"time"

	"alignai-be/internal/dto"
	"alignai-be/internal/entity"
	"alignai-be/internal/pkg/serverutils"
	"alignai-be/internal/repository/specification"
	"alignai-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	improvementThreshold = 7.0
	improvementLimit     = 5
	recentWindow         = 30 * 24 * time.Hour
)

type IAnalyticsService interface {
	Dashboard(ctx context.Context, userId uuid.UUID) (*dto.DashboardResponse, error)
	PerformanceTrends(ctx context.Context, userId uuid.UUID, days int) (*dto.TrendsResponse, error)
	CategoryPerformance(ctx context.Context, userId uuid.UUID) (*dto.CategoryPerformanceResponse, error)
	ImprovementAreas(ctx context.Context, userId uuid.UUID) (*dto.ImprovementAreasResponse, error)
}

type analyticsService struct {
	uowFactory unitofwork.RepositoryFactory
	now        func() time.Time
}

func NewAnalyticsService(uowFactory unitofwork.RepositoryFactory) IAnalyticsService {
	return &analyticsService{uowFactory: uowFactory, now: time.Now}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return round2(*v)
}

func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

func (s *analyticsService) Dashboard(ctx context.Context, userId uuid.UUID) (*dto.DashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	owned := specification.UserOwnedBy{UserID: userId}

	total, err := uow.InterviewRepository().Count(ctx, owned)
	if err != nil {
		return nil, serverutils.Internal("Failed to load analytics", err)
	}
	completed, err := uow.InterviewRepository().Count(ctx, owned, specification.ByStatus{Status: entity.InterviewStatusCompleted})
	if err != nil {
		return nil, serverutils.Internal("Failed to load analytics", err)
	}
	recent, err := uow.InterviewRepository().Count(ctx, owned, specification.CreatedAfter{Since: s.now().Add(-recentWindow)})
	if err != nil {
		return nil, serverutils.Internal("Failed to load analytics", err)
	}
	avg, err := uow.AnalyticsRepository().AverageScore(ctx, userId)
	if err != nil {
		return nil, serverutils.Internal("Failed to load analytics", err)
	}
	stats, err := uow.AnalyticsRepository().CategoryStats(ctx, userId)
	if err != nil {
		return nil, serverutils.Internal("Failed to load analytics", err)
	}

	resp := &dto.DashboardResponse{
		TotalInterviews:     total,
		CompletedInterviews: completed,
		CompletionRate:      percent(completed, total),
		AverageScore:        orZero(avg),
		RecentInterviews:    recent,
		CategoryBreakdown:   make([]dto.CategoryBreakdown, 0, len(stats)),
	}
	for _, st := range stats {
		resp.CategoryBreakdown = append(resp.CategoryBreakdown, dto.CategoryBreakdown{
			Category: st.Category,
			Count:    st.Total,
			AvgScore: orZero(st.AverageScore),
		})
	}
	return resp, nil
}

func (s *analyticsService) PerformanceTrends(ctx context.Context, userId uuid.UUID, days int) (*dto.TrendsResponse, error) {
	if days <= 0 {
		days = 30
	}
	if days > 365 {
		return nil, serverutils.Validation("days must be at most 365")
	}

	since := s.now().AddDate(0, 0, -days)
	rows, err := s.uowFactory.NewUnitOfWork(ctx).AnalyticsRepository().DailyStats(ctx, userId, since)
	if err != nil {
		return nil, serverutils.Internal("Failed to load trends", err)
	}

	resp := &dto.TrendsResponse{Trends: make([]dto.TrendPoint, 0, len(rows))}
	for _, r := range rows {
		resp.Trends = append(resp.Trends, dto.TrendPoint{Date: r.Date, Count: r.Count, AvgScore: orZero(r.AverageScore)})
	}
	return resp, nil
}

func (s *analyticsService) CategoryPerformance(ctx context.Context, userId uuid.UUID) (*dto.CategoryPerformanceResponse, error) {
	stats, err := s.uowFactory.NewUnitOfWork(ctx).AnalyticsRepository().CategoryStats(ctx, userId)
	if err != nil {
		return nil, serverutils.Internal("Failed to load category performance", err)
	}

	resp := &dto.CategoryPerformanceResponse{Categories: make([]dto.CategoryPerformance, 0, len(stats))}
	for _, st := range stats {
		resp.Categories = append(resp.Categories, dto.CategoryPerformance{
			Category:       st.Category,
			Total:          st.Total,
			Completed:      st.Completed,
			CompletionRate: percent(st.Completed, st.Total),
			AvgScore:       orZero(st.AverageScore),
			MinScore:       st.MinScore,
			MaxScore:       st.MaxScore,
		})
	}
	return resp, nil
}

func (s *analyticsService) ImprovementAreas(ctx context.Context, userId uuid.UUID) (*dto.ImprovementAreasResponse, error) {
	repo := s.uowFactory.NewUnitOfWork(ctx).AnalyticsRepository()

	weak, err := repo.WeakQuestions(ctx, userId, improvementThreshold, improvementLimit)
	if err != nil {
		return nil, serverutils.Internal("Failed to load improvement areas", err)
	}
	types, err := repo.QuestionTypeStats(ctx, userId)
	if err != nil {
		return nil, serverutils.Internal("Failed to load improvement areas", err)
	}

	resp := &dto.ImprovementAreasResponse{
		ImprovementAreas:        make([]dto.ImprovementArea, 0, len(weak)),
		QuestionTypePerformance: make([]dto.QuestionTypePerformance, 0, len(types)),
	}
	for _, q := range weak {
		resp.ImprovementAreas = append(resp.ImprovementAreas, dto.ImprovementArea{
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Score:        q.Score,
			Feedback:     q.AiFeedback,
			Category:     q.Category,
		})
	}
	for _, t := range types {
		resp.QuestionTypePerformance = append(resp.QuestionTypePerformance, dto.QuestionTypePerformance{
			Type:     t.QuestionType,
			Count:    t.Total,
			AvgScore: orZero(t.AverageScore),
		})
	}
	return resp, nil
}
