package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending         = "Pending"
	StatusInProgress      = "In Progress"
	StatusCompleted       = "Completed"
	StatusPendingApproval = "Pending Approval"
	StatusOverdue         = "Overdue"
)

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Task is the central record of the workspace. Attachments and ChatLog are
// stored as JSON-serialized text columns; Accomplishments is an append-only
// human-readable log that must never be rewritten.
type Task struct {
	ID              string          `gorm:"primaryKey" json:"id"`
	Title           string          `gorm:"not null" json:"title"`
	Description     string          `json:"description"`
	Status          string          `gorm:"not null;default:Pending" json:"status"`
	Priority        string          `gorm:"not null;default:Medium" json:"priority"`
	Progress        int             `gorm:"not null;default:0" json:"progress"`
	DueDate         *time.Time      `json:"dueDate"`
	AssigneeID      *string         `json:"assigneeId"`
	Assignee        *User           `json:"assignee,omitempty"`
	Attachments     string          `json:"attachments,omitempty"`
	ChatLog         string          `json:"chatLog,omitempty"`
	Accomplishments string          `json:"accomplishments"`
	TemplateID      *string         `json:"templateId"`
	Template        *PromptTemplate `json:"template,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (task *Task) BeforeCreate(*gorm.DB) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	return nil
}

// ChatMessage is one confirmed turn of a task conversation transcript.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// Attachment describes one uploaded file linked to a task.
type Attachment struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusPendingApproval, StatusOverdue:
		return true
	default:
		return false
	}
}

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ClampProgress keeps progress inside 0-100.
func ClampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
