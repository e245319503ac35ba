package dto

import (
	"time"

	"github.com/google/uuid"
)

type TemplateResponse struct {
	Id          uuid.UUID `json:"id"`
	Subcategory string    `json:"subcategory"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Duration    int       `json:"duration"`
	Difficulty  string    `json:"difficulty"`
}

type TemplatesResponse struct {
	Categories map[string][]TemplateResponse `json:"categories"`
}

type VoicesResponse struct {
	Voices  map[string][]string `json:"voices"`
	Default string              `json:"default"`
}

type StartInterviewRequest struct {
	TemplateId  uuid.UUID `json:"template_id" validate:"required"`
	VoiceGender string    `json:"voice_gender" validate:"omitempty,oneof=female male"`
}

type StartInterviewResponse struct {
	InterviewId uuid.UUID `json:"interview_id"`
	Title       string    `json:"title"`
	Duration    int       `json:"duration"`
	Difficulty  string    `json:"difficulty"`
	VoiceGender string    `json:"voice_gender"`
}

type InterviewResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory"`
	Status      string     `json:"status"`
	Score       *float64   `json:"score"`
	Feedback    *string    `json:"feedback,omitempty"`
	Duration    int        `json:"duration"`
	Difficulty  string     `json:"difficulty"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type InterviewListResponse struct {
	Interviews []InterviewResponse `json:"interviews"`
}

type QuestionResponse struct {
	Id           uuid.UUID `json:"id"`
	QuestionText string    `json:"question_text"`
	QuestionType string    `json:"question_type"`
	Answer       *string   `json:"answer"`
	AiFeedback   *string   `json:"ai_feedback"`
	Score        *float64  `json:"score"`
	OrderIndex   int       `json:"order_index"`
}

type InterviewDetailResponse struct {
	Interview InterviewResponse  `json:"interview"`
	Questions []QuestionResponse `json:"questions"`
}
