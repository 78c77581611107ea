package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromptTemplate is a named block of task-type-specific rules appended to the
// base LLM instruction (e.g. a crisis-response checklist).
type PromptTemplate struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Content     string    `gorm:"not null" json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (template *PromptTemplate) BeforeCreate(*gorm.DB) error {
	if template.ID == "" {
		template.ID = uuid.NewString()
	}
	return nil
}
