package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"alignai-be/internal/entity"
	"alignai-be/internal/pkg/mailer"
	"alignai-be/internal/repository/contract"
	"alignai-be/internal/repository/specification"
	"alignai-be/internal/repository/unitofwork"
	"alignai-be/pkg/events"

	"github.com/google/uuid"
)

// memDB is a tiny in-memory stand-in for the database. The fake repositories
// understand the specification types the services use.
type memDB struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*entity.User
	interviews map[uuid.UUID]*entity.Interview
	questions  []*entity.InterviewQuestion
	templates  []*entity.InterviewTemplate
	resumes    map[uuid.UUID]*entity.Resume

	avgScore   *float64
	categories []entity.CategoryStat
	daily      []entity.DailyStat
	weak       []entity.WeakQuestion
	typeStats  []entity.QuestionTypeStat
	dailySince time.Time
}

func newMemDB() *memDB {
	return &memDB{
		users:      map[uuid.UUID]*entity.User{},
		interviews: map[uuid.UUID]*entity.Interview{},
		resumes:    map[uuid.UUID]*entity.Resume{},
	}
}

func (db *memDB) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUoW{db: db}
}

var _ unitofwork.RepositoryFactory = (*memDB)(nil)

type memUoW struct {
	db *memDB
}

func (u *memUoW) Begin(ctx context.Context) error { return nil }
func (u *memUoW) Commit() error                   { return nil }
func (u *memUoW) Rollback() error                 { return nil }

func (u *memUoW) UserRepository() contract.UserRepository { return &memUsers{u.db} }
func (u *memUoW) InterviewRepository() contract.InterviewRepository {
	return &memInterviews{u.db}
}
func (u *memUoW) InterviewQuestionRepository() contract.InterviewQuestionRepository {
	return &memQuestions{u.db}
}
func (u *memUoW) InterviewTemplateRepository() contract.InterviewTemplateRepository {
	return &memTemplates{u.db}
}
func (u *memUoW) ResumeRepository() contract.ResumeRepository       { return &memResumes{u.db} }
func (u *memUoW) AnalyticsRepository() contract.AnalyticsRepository { return &memAnalytics{u.db} }

// filter describes what a spec list asks for.
type filter struct {
	id        *uuid.UUID
	owner     *uuid.UUID
	email     *string
	username  *string
	status    *entity.InterviewStatus
	since     *time.Time
	active    bool
	orderDesc bool
}

func parse(specs []specification.Specification) filter {
	var f filter
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			f.id = &v.ID
		case specification.UserOwnedBy:
			f.owner = &v.UserID
		case specification.ByEmail:
			f.email = &v.Email
		case specification.ByUsername:
			f.username = &v.Username
		case specification.ByStatus:
			f.status = &v.Status
		case specification.CreatedAfter:
			f.since = &v.Since
		case specification.ActiveTemplates:
			f.active = true
		case specification.OrderBy:
			f.orderDesc = v.Desc
		}
	}
	return f
}

type memUsers struct{ db *memDB }

func (r *memUsers) match(f filter, u *entity.User) bool {
	return (f.id == nil || *f.id == u.Id) &&
		(f.email == nil || *f.email == u.Email) &&
		(f.username == nil || *f.username == u.Username)
}

func (r *memUsers) Create(ctx context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *user
	r.db.users[user.Id] = &cp
	return nil
}

func (r *memUsers) Update(ctx context.Context, user *entity.User) error {
	return r.Create(ctx, user)
}

func (r *memUsers) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *memUsers) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	f := parse(specs)
	var out []*entity.User
	for _, u := range r.db.users {
		if r.match(f, u) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memUsers) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *memUsers) UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if u, ok := r.db.users[id]; ok {
		u.FullName = &fullName
	}
	return nil
}

type memInterviews struct{ db *memDB }

func (r *memInterviews) Create(ctx context.Context, iv *entity.Interview) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *iv
	cp.Questions = nil
	r.db.interviews[iv.Id] = &cp
	return nil
}

func (r *memInterviews) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interview, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	f := parse(specs)
	var out []*entity.Interview
	for _, iv := range r.db.interviews {
		if (f.id == nil || *f.id == iv.Id) &&
			(f.owner == nil || *f.owner == iv.UserId) &&
			(f.status == nil || *f.status == iv.Status) &&
			(f.since == nil || !iv.CreatedAt.Before(*f.since)) {
			cp := *iv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if f.orderDesc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memInterviews) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Interview, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *memInterviews) FindOneWithQuestions(ctx context.Context, specs ...specification.Specification) (*entity.Interview, error) {
	iv, _ := r.FindOne(ctx, specs...)
	if iv == nil {
		return nil, nil
	}
	qs, _ := (&memQuestions{r.db}).FindAll(ctx, specification.ByInterviewID{InterviewID: iv.Id})
	iv.Questions = qs
	return iv, nil
}

func (r *memInterviews) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *memInterviews) Complete(ctx context.Context, id uuid.UUID, completedAt time.Time, feedback string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	iv, ok := r.db.interviews[id]
	if !ok || iv.Status != entity.InterviewStatusInProgress {
		return false, nil
	}
	iv.Status = entity.InterviewStatusCompleted
	iv.CompletedAt = &completedAt
	iv.Feedback = &feedback
	return true, nil
}

func (r *memInterviews) TransitionStatus(ctx context.Context, id uuid.UUID, from []entity.InterviewStatus, to entity.InterviewStatus) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	iv, ok := r.db.interviews[id]
	if !ok {
		return false, nil
	}
	for _, st := range from {
		if iv.Status == st {
			iv.Status = to
			return true, nil
		}
	}
	return false, nil
}

type memQuestions struct{ db *memDB }

func (r *memQuestions) CreateBatch(ctx context.Context, questions []*entity.InterviewQuestion) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, q := range questions {
		cp := *q
		r.db.questions = append(r.db.questions, &cp)
	}
	return nil
}

func (r *memQuestions) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InterviewQuestion, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var interviewID *uuid.UUID
	for _, s := range specs {
		if v, ok := s.(specification.ByInterviewID); ok {
			interviewID = &v.InterviewID
		}
	}
	var out []*entity.InterviewQuestion
	for _, q := range r.db.questions {
		if interviewID == nil || *interviewID == q.InterviewId {
			cp := *q
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

type memTemplates struct{ db *memDB }

func (r *memTemplates) Create(ctx context.Context, t *entity.InterviewTemplate) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *t
	r.db.templates = append(r.db.templates, &cp)
	return nil
}

func (r *memTemplates) Update(ctx context.Context, t *entity.InterviewTemplate) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, existing := range r.db.templates {
		if existing.Id == t.Id {
			cp := *t
			r.db.templates[i] = &cp
		}
	}
	return nil
}

func (r *memTemplates) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InterviewTemplate, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *memTemplates) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InterviewTemplate, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	f := parse(specs)
	var out []*entity.InterviewTemplate
	for _, t := range r.db.templates {
		if (f.id == nil || *f.id == t.Id) && (!f.active || t.IsActive) {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memResumes struct{ db *memDB }

func (r *memResumes) Create(ctx context.Context, resume *entity.Resume) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *resume
	r.db.resumes[resume.Id] = &cp
	return nil
}

func (r *memResumes) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Resume, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *memResumes) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Resume, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	f := parse(specs)
	var out []*entity.Resume
	for _, res := range r.db.resumes {
		if (f.id == nil || *f.id == res.Id) && (f.owner == nil || *f.owner == res.UserId) {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memResumes) MarkProcessed(ctx context.Context, id uuid.UUID, content *string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if res, ok := r.db.resumes[id]; ok {
		res.Status = entity.ResumeStatusProcessed
		res.Content = content
	}
	return nil
}

type memAnalytics struct{ db *memDB }

func (r *memAnalytics) AverageScore(ctx context.Context, userID uuid.UUID) (*float64, error) {
	return r.db.avgScore, nil
}

func (r *memAnalytics) CategoryStats(ctx context.Context, userID uuid.UUID) ([]entity.CategoryStat, error) {
	return r.db.categories, nil
}

func (r *memAnalytics) DailyStats(ctx context.Context, userID uuid.UUID, since time.Time) ([]entity.DailyStat, error) {
	r.db.dailySince = since
	return r.db.daily, nil
}

func (r *memAnalytics) WeakQuestions(ctx context.Context, userID uuid.UUID, below float64, limit int) ([]entity.WeakQuestion, error) {
	return r.db.weak, nil
}

func (r *memAnalytics) QuestionTypeStats(ctx context.Context, userID uuid.UUID) ([]entity.QuestionTypeStat, error) {
	return r.db.typeStats, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

type recordingMailer struct {
	mu      sync.Mutex
	reports []mailer.InterviewReport
	welcome []string
}

func (m *recordingMailer) SendWelcome(toEmail, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcome = append(m.welcome, toEmail)
	return nil
}

func (m *recordingMailer) SendInterviewReport(toEmail string, report mailer.InterviewReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, report)
	return nil
}

func (m *recordingMailer) reportCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reports)
}

type recordingQueue struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (q *recordingQueue) Publish(ctx context.Context, payload []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.payloads = append(q.payloads, payload)
	return nil
}
