package specification

import (
	"alignai-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByStatus struct {
	Status entity.InterviewStatus
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", string(s.Status))
}

type ByInterviewID struct {
	InterviewID uuid.UUID
}

func (s ByInterviewID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("interview_id = ?", s.InterviewID)
}

type ActiveTemplates struct{}

func (s ActiveTemplates) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ByTopic matches a template on its category/subcategory pair.
type ByTopic struct {
	Category    string
	Subcategory string
}

func (s ByTopic) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ? AND subcategory = ?", s.Category, s.Subcategory)
}
