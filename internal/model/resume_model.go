package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Resume struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	FilePath    string         `gorm:"type:varchar(500);not null"`
	ContentType string         `gorm:"type:varchar(100)"`
	Content     *string        `gorm:"type:text"`
	Skills      datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Experience  datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Education   datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Status      string         `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (Resume) TableName() string {
	return "resumes"
}
