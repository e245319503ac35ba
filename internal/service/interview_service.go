package service

import (
	"context"
	"time"

	"alignai-be/internal/dto"
	"alignai-be/internal/entity"
	"alignai-be/internal/pkg/logger"
	"alignai-be/internal/pkg/mailer"
	"alignai-be/internal/pkg/serverutils"
	"alignai-be/internal/repository/specification"
	"alignai-be/internal/repository/unitofwork"
	"alignai-be/pkg/events"
	"alignai-be/pkg/voice"

	"github.com/google/uuid"
)

type IInterviewService interface {
	GetTemplates(ctx context.Context) (*dto.TemplatesResponse, error)
	GetVoices() *dto.VoicesResponse
	StartInterview(ctx context.Context, userId uuid.UUID, req *dto.StartInterviewRequest) (*dto.StartInterviewResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID) (*dto.InterviewListResponse, error)
	GetInterviewDetail(ctx context.Context, userId, interviewId uuid.UUID) (*dto.InterviewDetailResponse, error)
	CancelInterview(ctx context.Context, userId, interviewId uuid.UUID) (*dto.InterviewResponse, error)

	// Session persistence for the live channel.
	GetSession(ctx context.Context, id uuid.UUID) (*entity.Interview, error)
	CompleteSession(ctx context.Context, id uuid.UUID, completedAt time.Time, feedback string) error
}

type interviewService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher EventPublisher
	emailService   mailer.IEmailService
	defaultVoice   voice.Profile
	logger         logger.ILogger
}

func NewInterviewService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher EventPublisher,
	emailService mailer.IEmailService,
	defaultVoice voice.Profile,
	log logger.ILogger,
) IInterviewService {
	return &interviewService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		defaultVoice:   defaultVoice,
		logger:         log,
	}
}

func toInterviewResponse(iv *entity.Interview, withFeedback bool) dto.InterviewResponse {
	resp := dto.InterviewResponse{
		Id:          iv.Id,
		Title:       iv.Title,
		Category:    iv.Category,
		Subcategory: iv.Subcategory,
		Status:      string(iv.Status),
		Score:       iv.Score,
		Duration:    iv.Duration,
		Difficulty:  iv.Difficulty,
		StartedAt:   iv.StartedAt,
		CompletedAt: iv.CompletedAt,
		CreatedAt:   iv.CreatedAt,
	}
	if withFeedback {
		resp.Feedback = iv.Feedback
	}
	return resp
}

// GetTemplates groups active templates by category, keeping creation order
// inside each group.
func (s *interviewService) GetTemplates(ctx context.Context) (*dto.TemplatesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	templates, err := uow.InterviewTemplateRepository().FindAll(ctx,
		specification.ActiveTemplates{},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, serverutils.Internal("Failed to load templates", err)
	}

	resp := &dto.TemplatesResponse{Categories: map[string][]dto.TemplateResponse{}}
	for _, t := range templates {
		resp.Categories[t.Category] = append(resp.Categories[t.Category], dto.TemplateResponse{
			Id:          t.Id,
			Subcategory: t.Subcategory,
			Title:       t.Title,
			Description: t.Description,
			Duration:    t.Duration,
			Difficulty:  t.Difficulty,
		})
	}
	return resp, nil
}

func (s *interviewService) GetVoices() *dto.VoicesResponse {
	voices := map[string][]string{}
	for profile, names := range voice.AvailableVoices() {
		voices[string(profile)] = names
	}
	return &dto.VoicesResponse{Voices: voices, Default: string(s.defaultVoice)}
}

// StartInterview copies the template into a new in_progress interview and
// materializes its seed questions in order.
func (s *interviewService) StartInterview(ctx context.Context, userId uuid.UUID, req *dto.StartInterviewRequest) (*dto.StartInterviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	template, err := uow.InterviewTemplateRepository().FindOne(ctx,
		specification.ByID{ID: req.TemplateId},
		specification.ActiveTemplates{},
	)
	if err != nil {
		return nil, serverutils.Internal("Failed to load template", err)
	}
	if template == nil {
		return nil, serverutils.NotFound("Interview template not found")
	}

	now := time.Now().UTC()
	interview := &entity.Interview{
		Id:          uuid.New(),
		UserId:      userId,
		Category:    template.Category,
		Subcategory: template.Subcategory,
		Title:       template.Title,
		Duration:    template.Duration,
		Difficulty:  template.Difficulty,
		Status:      entity.InterviewStatusInProgress,
		StartedAt:   &now,
		CreatedAt:   now,
	}
	for i, text := range template.Questions {
		interview.Questions = append(interview.Questions, &entity.InterviewQuestion{
			Id:           uuid.New(),
			InterviewId:  interview.Id,
			QuestionText: text,
			QuestionType: entity.QuestionTypeTechnical,
			OrderIndex:   i,
			CreatedAt:    now,
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, serverutils.Internal("Failed to start interview", err)
	}
	defer uow.Rollback()

	if err := uow.InterviewRepository().Create(ctx, interview); err != nil {
		return nil, serverutils.Internal("Failed to start interview", err)
	}
	if len(interview.Questions) > 0 {
		if err := uow.InterviewQuestionRepository().CreateBatch(ctx, interview.Questions); err != nil {
			return nil, serverutils.Internal("Failed to start interview", err)
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, serverutils.Internal("Failed to start interview", err)
	}

	profile := s.defaultVoice
	if req.VoiceGender != "" {
		profile = voice.ParseProfile(req.VoiceGender)
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.TypeInterviewStarted, map[string]interface{}{
		"interview_id": interview.Id,
		"user_id":      userId,
		"category":     interview.Category,
		"title":        interview.Title,
	})
	s.logger.Info("InterviewService", "Interview started", map[string]interface{}{"interview_id": interview.Id, "user_id": userId})

	return &dto.StartInterviewResponse{
		InterviewId: interview.Id,
		Title:       interview.Title,
		Duration:    interview.Duration,
		Difficulty:  interview.Difficulty,
		VoiceGender: string(profile),
	}, nil
}

func (s *interviewService) GetHistory(ctx context.Context, userId uuid.UUID) (*dto.InterviewListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	interviews, err := uow.InterviewRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, serverutils.Internal("Failed to load interviews", err)
	}

	resp := &dto.InterviewListResponse{Interviews: make([]dto.InterviewResponse, 0, len(interviews))}
	for _, iv := range interviews {
		resp.Interviews = append(resp.Interviews, toInterviewResponse(iv, false))
	}
	return resp, nil
}

func (s *interviewService) GetInterviewDetail(ctx context.Context, userId, interviewId uuid.UUID) (*dto.InterviewDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	iv, err := uow.InterviewRepository().FindOneWithQuestions(ctx,
		specification.ByID{ID: interviewId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, serverutils.Internal("Failed to load interview", err)
	}
	if iv == nil {
		return nil, serverutils.NotFound("Interview not found")
	}

	resp := &dto.InterviewDetailResponse{
		Interview: toInterviewResponse(iv, true),
		Questions: make([]dto.QuestionResponse, 0, len(iv.Questions)),
	}
	for _, q := range iv.Questions {
		resp.Questions = append(resp.Questions, dto.QuestionResponse{
			Id:           q.Id,
			QuestionText: q.QuestionText,
			QuestionType: string(q.QuestionType),
			Answer:       q.Answer,
			AiFeedback:   q.AiFeedback,
			Score:        q.Score,
			OrderIndex:   q.OrderIndex,
		})
	}
	return resp, nil
}

func (s *interviewService) CancelInterview(ctx context.Context, userId, interviewId uuid.UUID) (*dto.InterviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	iv, err := uow.InterviewRepository().FindOne(ctx,
		specification.ByID{ID: interviewId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, serverutils.Internal("Failed to load interview", err)
	}
	if iv == nil {
		return nil, serverutils.NotFound("Interview not found")
	}

	ok, err := uow.InterviewRepository().TransitionStatus(ctx, interviewId,
		[]entity.InterviewStatus{entity.InterviewStatusScheduled, entity.InterviewStatusInProgress},
		entity.InterviewStatusCancelled,
	)
	if err != nil {
		return nil, serverutils.Internal("Failed to cancel interview", err)
	}
	if !ok {
		return nil, serverutils.Conflict("Only scheduled or in-progress interviews can be cancelled")
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.TypeInterviewCancelled, map[string]interface{}{
		"interview_id": interviewId,
		"user_id":      userId,
	})

	iv.Status = entity.InterviewStatusCancelled
	resp := toInterviewResponse(iv, false)
	return &resp, nil
}

func (s *interviewService) GetSession(ctx context.Context, id uuid.UUID) (*entity.Interview, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	iv, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, serverutils.Internal("Failed to load interview", err)
	}
	if iv == nil {
		return nil, serverutils.NotFound("Interview not found")
	}
	return iv, nil
}

// CompleteSession is the only terminal write for a live interview. It fails
// with a conflict when the row has already left in_progress.
func (s *interviewService) CompleteSession(ctx context.Context, id uuid.UUID, completedAt time.Time, feedback string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	ok, err := uow.InterviewRepository().Complete(ctx, id, completedAt, feedback)
	if err != nil {
		return serverutils.Internal("Failed to complete interview", err)
	}
	if !ok {
		return serverutils.Conflict("Interview is not in progress")
	}

	iv, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil || iv == nil {
		// the write succeeded; the follow-ups are best effort
		return nil
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.TypeInterviewCompleted, map[string]interface{}{
		"interview_id": id,
		"user_id":      iv.UserId,
		"category":     iv.Category,
	})
	s.sendReport(ctx, iv, feedback)
	return nil
}

func (s *interviewService) sendReport(ctx context.Context, iv *entity.Interview, feedback string) {
	if s.emailService == nil {
		return
	}
	user, err := s.uowFactory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: iv.UserId})
	if err != nil || user == nil {
		return
	}
	report := mailer.InterviewReport{Title: iv.Title, Category: iv.Category, Feedback: feedback}
	go func() {
		if err := s.emailService.SendInterviewReport(user.Email, report); err != nil {
			s.logger.Warn("InterviewService", "Report email failed", map[string]interface{}{"interview_id": iv.Id, "error": err.Error()})
		}
	}()
}
