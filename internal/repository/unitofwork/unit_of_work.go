package unitofwork

import (
	"context"

	"alignai-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	InterviewRepository() contract.InterviewRepository
	InterviewQuestionRepository() contract.InterviewQuestionRepository
	InterviewTemplateRepository() contract.InterviewTemplateRepository
	ResumeRepository() contract.ResumeRepository
	AnalyticsRepository() contract.AnalyticsRepository
}
