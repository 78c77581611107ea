package api

import (
	"github.com/yhkwon/taskpilot/internal/models"
	"github.com/yhkwon/taskpilot/internal/services"
)

// actionCommit selects the persisting branch of the intake and report
// endpoints; any other action value (including absent) means parse.
const actionCommit = "commit"

type intakeInput struct {
	Prompt      string               `json:"prompt"`
	History     []models.ChatMessage `json:"history"`
	Attachments []models.Attachment  `json:"attachments"`
	TemplateID  string               `json:"templateId"`
	Action      string               `json:"action"`
	Commit      bool                 `json:"commit"`
	TaskData    *services.TaskDraft  `json:"taskData"`
}

// wantsCommit reports whether the request selects the commit branch. The
// action discriminator is canonical; the commit boolean is accepted as an
// alias.
func (input intakeInput) wantsCommit() bool {
	return input.Action == actionCommit || input.Commit
}

type reportInput struct {
	Prompt   string                `json:"prompt"`
	History  []models.ChatMessage  `json:"history"`
	Action   string                `json:"action"`
	Commit   bool                  `json:"commit"`
	TaskData *services.ReportDraft `json:"taskData"`
}

func (input reportInput) wantsCommit() bool {
	return input.Action == actionCommit || input.Commit
}

type userInput struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Role   *string `json:"role"`
	Avatar *string `json:"avatar"`
}

type settingsInput struct {
	LLMProvider    string `json:"llmProvider"`
	LLMAPIKey      string `json:"llmApiKey"`
	LLMModel       string `json:"llmModel"`
	SystemPrompt   string `json:"systemPrompt"`
	ReportPrompt   string `json:"reportPrompt"`
	EmailEnabled   *bool  `json:"emailEnabled"`
	EmailFrequency string `json:"emailFrequency"`
	DeliveryTime   string `json:"deliveryTime"`
}

type templateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
}

type taskPatchInput struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Status          *string `json:"status"`
	Priority        *string `json:"priority"`
	Progress        *int    `json:"progress"`
	DueDate         *string `json:"dueDate"`
	AssigneeID      *string `json:"assigneeId"`
	Accomplishments *string `json:"accomplishments"`
}
