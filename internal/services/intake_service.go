package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yhkwon/taskpilot/internal/llm"
	"github.com/yhkwon/taskpilot/internal/models"
)

var (
	ErrPromptRequired = errors.New("prompt or history is required")
	ErrTitleRequired  = errors.New("task title is required")
)

type IntakeSettingsStore interface {
	LoadOrInit() (models.Settings, error)
}

type IntakeDirectoryStore interface {
	List() ([]models.User, error)
}

type IntakeTaskStore interface {
	Create(task *models.Task) error
	FindByID(taskID string) (models.Task, error)
}

type IntakeTemplateStore interface {
	FindByID(templateID string) (models.PromptTemplate, error)
}

// IntakeService turns free-text requests into structured tasks: parse asks
// the LLM for fields (or a clarifying question), commit persists the
// reviewed fields as a new Pending task.
type IntakeService struct {
	settings      IntakeSettingsStore
	users         IntakeDirectoryStore
	tasks         IntakeTaskStore
	templates     IntakeTemplateStore
	openAIBaseURL string
	now           func() time.Time
}

func NewIntakeService(
	settings IntakeSettingsStore,
	users IntakeDirectoryStore,
	tasks IntakeTaskStore,
	templates IntakeTemplateStore,
	openAIBaseURL string,
) *IntakeService {
	return &IntakeService{
		settings:      settings,
		users:         users,
		tasks:         tasks,
		templates:     templates,
		openAIBaseURL: openAIBaseURL,
		now:           time.Now,
	}
}

// SetClock overrides the service clock, for tests.
func (service *IntakeService) SetClock(now func() time.Time) {
	service.now = now
}

type IntakeParseInput struct {
	Prompt      string
	History     []models.ChatMessage
	Attachments []models.Attachment
	TemplateID  string
}

// IntakeOutcome is either a clarification request or the parsed fields
// awaiting client-side confirmation. Nothing is written in either case.
type IntakeOutcome struct {
	NeedsClarification bool
	Message            string
	Options            []string
	Fields             llm.Response
}

func (service *IntakeService) Parse(ctx context.Context, input IntakeParseInput) (IntakeOutcome, error) {
	if strings.TrimSpace(input.Prompt) == "" && len(input.History) == 0 {
		return IntakeOutcome{}, ErrPromptRequired
	}

	settings, err := service.settings.LoadOrInit()
	if err != nil {
		return IntakeOutcome{}, fmt.Errorf("load settings: %w", err)
	}
	users, err := service.users.List()
	if err != nil {
		return IntakeOutcome{}, fmt.Errorf("load users: %w", err)
	}

	addendum := ""
	if input.TemplateID != "" {
		if template, err := service.templates.FindByID(input.TemplateID); err == nil {
			addendum = template.Content
		}
	}

	base := settings.SystemPrompt
	if strings.TrimSpace(base) == "" {
		base = DefaultIntakePrompt
	}

	now := service.now()
	systemPrompt := ComposePrompt(base, addendum, IntakeContext(now, users))

	mock := &llm.Mock{
		Today:     now.Format("2006-01-02"),
		UserNames: userNames(users),
	}
	gateway := selectGateway(settings, service.openAIBaseURL, mock)

	response, err := gateway.Invoke(ctx, llm.Request{
		SystemPrompt: systemPrompt,
		History:      toConversation(input.History),
		Prompt:       input.Prompt,
		Attachments:  attachmentNames(input.Attachments),
		Kind:         llm.KindIntake,
	})
	if err != nil {
		return IntakeOutcome{}, err
	}
	if err := response.Validate(llm.KindIntake); err != nil {
		return IntakeOutcome{}, fmt.Errorf("llm response rejected: %w", err)
	}

	if response.NeedsClarification() {
		message := response.ClarificationMessage
		if message == "" {
			message = "Can you provide more details?"
		}
		options := response.Options
		if options == nil {
			options = []string{}
		}
		return IntakeOutcome{NeedsClarification: true, Message: message, Options: options}, nil
	}

	return IntakeOutcome{Fields: response}, nil
}

// TaskDraft is the reviewed/edited structured output a client submits on
// commit.
type TaskDraft struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	AssigneeName string `json:"assigneeName"`
	DueDate      string `json:"dueDate"`
	Priority     string `json:"priority"`
}

type IntakeCommitInput struct {
	Draft       TaskDraft
	Attachments []models.Attachment
	TemplateID  string
}

// Commit resolves the assignee against the directory and persists a new task.
// The create is atomic: either the row exists afterwards or nothing was
// written. An unresolvable assignee leaves the task unassigned.
func (service *IntakeService) Commit(input IntakeCommitInput) (models.Task, error) {
	if strings.TrimSpace(input.Draft.Title) == "" {
		return models.Task{}, ErrTitleRequired
	}

	users, err := service.users.List()
	if err != nil {
		return models.Task{}, fmt.Errorf("load users: %w", err)
	}

	priority := input.Draft.Priority
	if !models.ValidPriority(priority) {
		priority = models.PriorityMedium
	}

	task := models.Task{
		Title:       input.Draft.Title,
		Description: input.Draft.Description,
		Status:      models.StatusPending,
		Priority:    priority,
	}

	if dueDate, ok := parseDate(input.Draft.DueDate); ok {
		task.DueDate = &dueDate
	}

	if assignee := ResolveAssignee(input.Draft.AssigneeName, users); assignee != nil {
		assigneeID := assignee.ID
		task.AssigneeID = &assigneeID
	}

	if len(input.Attachments) > 0 {
		serialized, err := json.Marshal(input.Attachments)
		if err != nil {
			return models.Task{}, fmt.Errorf("serialize attachments: %w", err)
		}
		task.Attachments = string(serialized)
	}

	if input.TemplateID != "" {
		if _, err := service.templates.FindByID(input.TemplateID); err == nil {
			templateID := input.TemplateID
			task.TemplateID = &templateID
		}
	}

	if err := service.tasks.Create(&task); err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	return service.tasks.FindByID(task.ID)
}

// parseDate accepts only real YYYY-MM-DD values; sentinels and junk are
// treated as absent.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" || raw == "No date" || raw == "null" {
		return time.Time{}, false
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
