package entity

import (
	"time"

	"github.com/google/uuid"
)

type InterviewStatus string

const (
	InterviewStatusScheduled  InterviewStatus = "scheduled"
	InterviewStatusInProgress InterviewStatus = "in_progress"
	InterviewStatusCompleted  InterviewStatus = "completed"
	InterviewStatusCancelled  InterviewStatus = "cancelled"
)

type Interview struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Category    string
	Subcategory string
	Title       string
	Duration    int // minutes
	Difficulty  string
	Status      InterviewStatus
	Score       *float64
	Feedback    *string
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time

	Questions []*InterviewQuestion
}

type QuestionType string

const (
	QuestionTypeBehavioral QuestionType = "behavioral"
	QuestionTypeTechnical  QuestionType = "technical"
	QuestionTypeCoding     QuestionType = "coding"
)

type InterviewQuestion struct {
	Id           uuid.UUID
	InterviewId  uuid.UUID
	QuestionText string
	QuestionType QuestionType
	Answer       *string
	AiFeedback   *string
	Score        *float64
	OrderIndex   int
	CreatedAt    time.Time
}

type InterviewTemplate struct {
	Id          uuid.UUID
	Category    string
	Subcategory string
	Title       string
	Description *string
	Duration    int
	Difficulty  string
	Questions   []string
	IsActive    bool
	CreatedAt   time.Time
}
