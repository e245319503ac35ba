package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Interview struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Category    string     `gorm:"type:varchar(100);not null;index"`
	Subcategory string     `gorm:"type:varchar(100)"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Duration    int        `gorm:"not null;default:30"`
	Difficulty  string     `gorm:"type:varchar(50);default:'Medium'"`
	Status      string     `gorm:"type:varchar(20);not null;default:'scheduled';index"`
	Score       *float64   `gorm:"type:numeric(4,2)"`
	Feedback    *string    `gorm:"type:text"`
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`

	// Questions outlive cancellation; interviews are never hard-deleted.
	Questions []InterviewQuestion `gorm:"foreignKey:InterviewId;constraint:OnDelete:RESTRICT"`
}

func (Interview) TableName() string {
	return "interviews"
}

type InterviewQuestion struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InterviewId  uuid.UUID `gorm:"type:uuid;not null;index"`
	QuestionText string    `gorm:"type:text;not null"`
	QuestionType string    `gorm:"type:varchar(50);default:'technical'"`
	Answer       *string   `gorm:"type:text"`
	AiFeedback   *string   `gorm:"type:text"`
	Score        *float64  `gorm:"type:numeric(4,2)"`
	OrderIndex   int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (InterviewQuestion) TableName() string {
	return "interview_questions"
}

type InterviewTemplate struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category    string                      `gorm:"type:varchar(100);not null;index"`
	Subcategory string                      `gorm:"type:varchar(100)"`
	Title       string                      `gorm:"type:varchar(255);not null"`
	Description *string                     `gorm:"type:text"`
	Duration    int                         `gorm:"not null;default:30"`
	Difficulty  string                      `gorm:"type:varchar(50);default:'Medium'"`
	Questions   datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	IsActive    bool                        `gorm:"default:true;index"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
}

func (InterviewTemplate) TableName() string {
	return "interview_templates"
}
