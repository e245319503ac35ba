package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=255"`
}

type UploadResumeResponse struct {
	ResumeId uuid.UUID `json:"resume_id"`
	FilePath string    `json:"file_path"`
	Status   string    `json:"status"`
}

type ResumeResponse struct {
	Id         uuid.UUID       `json:"id"`
	FilePath   string          `json:"file_path"`
	Status     string          `json:"status"`
	Skills     json.RawMessage `json:"skills"`
	Experience json.RawMessage `json:"experience"`
	Education  json.RawMessage `json:"education"`
	CreatedAt  time.Time       `json:"created_at"`
}

type ResumesResponse struct {
	Resumes []ResumeResponse `json:"resumes"`
}

// ResumeUploadedMessage is the in-process queue payload for resume processing.
type ResumeUploadedMessage struct {
	ResumeId uuid.UUID `json:"resume_id"`
	UserId   uuid.UUID `json:"user_id"`
}
