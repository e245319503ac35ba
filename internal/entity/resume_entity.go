package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ResumeStatus string

const (
	ResumeStatusPending   ResumeStatus = "pending"
	ResumeStatusProcessed ResumeStatus = "processed"
)

type Resume struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	FilePath    string
	ContentType string
	Content     *string
	Skills      json.RawMessage
	Experience  json.RawMessage
	Education   json.RawMessage
	Status      ResumeStatus
	CreatedAt   time.Time
}
