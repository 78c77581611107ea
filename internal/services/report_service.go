package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yhkwon/taskpilot/internal/llm"
	"github.com/yhkwon/taskpilot/internal/models"
)

type ReportTaskStore interface {
	FindByID(taskID string) (models.Task, error)
	ApplyReport(taskID string, updates map[string]any) (models.Task, error)
}

// ReportService interprets conversational progress updates against one
// existing task. The scenario classification (reassignment, completion
// verification, routine progress) is delegated to the LLM through the report
// prompt; the service trusts the validated response and persists it.
// On success the update is committed immediately; only a need_clarification
// response returns without a write.
type ReportService struct {
	settings      IntakeSettingsStore
	users         IntakeDirectoryStore
	tasks         ReportTaskStore
	openAIBaseURL string
	now           func() time.Time
}

func NewReportService(
	settings IntakeSettingsStore,
	users IntakeDirectoryStore,
	tasks ReportTaskStore,
	openAIBaseURL string,
) *ReportService {
	return &ReportService{
		settings:      settings,
		users:         users,
		tasks:         tasks,
		openAIBaseURL: openAIBaseURL,
		now:           time.Now,
	}
}

// SetClock overrides the service clock, for tests.
func (service *ReportService) SetClock(now func() time.Time) {
	service.now = now
}

type ReportParseInput struct {
	TaskID  string
	Prompt  string
	History []models.ChatMessage
}

// ReportOutcome carries either a clarification request or the committed task
// plus the raw structured response for client display.
type ReportOutcome struct {
	NeedsClarification bool
	Message            string
	Options            []string
	Task               *models.Task
	Fields             llm.Response
}

func (service *ReportService) Parse(ctx context.Context, input ReportParseInput) (ReportOutcome, error) {
	if strings.TrimSpace(input.Prompt) == "" && len(input.History) == 0 {
		return ReportOutcome{}, ErrPromptRequired
	}

	task, err := service.tasks.FindByID(input.TaskID)
	if err != nil {
		return ReportOutcome{}, err
	}

	settings, err := service.settings.LoadOrInit()
	if err != nil {
		return ReportOutcome{}, fmt.Errorf("load settings: %w", err)
	}
	users, err := service.users.List()
	if err != nil {
		return ReportOutcome{}, fmt.Errorf("load users: %w", err)
	}

	base := settings.ReportPrompt
	if strings.TrimSpace(base) == "" {
		base = DefaultReportPrompt
	}

	addendum := ""
	if task.Template != nil {
		addendum = task.Template.Content
	}

	now := service.now()
	systemPrompt := ComposePrompt(base, addendum, ReportContext(now, task, users))

	gateway := selectGateway(settings, service.openAIBaseURL, service.mockFor(task, users, now))

	response, err := gateway.Invoke(ctx, llm.Request{
		SystemPrompt: systemPrompt,
		History:      toConversation(input.History),
		Prompt:       input.Prompt,
		Kind:         llm.KindReport,
	})
	if err != nil {
		return ReportOutcome{}, err
	}
	if err := response.Validate(llm.KindReport); err != nil {
		return ReportOutcome{}, fmt.Errorf("llm response rejected: %w", err)
	}

	if response.NeedsClarification() {
		message := response.ClarificationMessage
		if message == "" {
			message = "Which part should be updated?"
		}
		options := response.Options
		if options == nil {
			options = []string{}
		}
		return ReportOutcome{NeedsClarification: true, Message: message, Options: options}, nil
	}

	updated, err := service.persist(task, response, input.History, input.Prompt)
	if err != nil {
		return ReportOutcome{}, err
	}
	return ReportOutcome{Task: &updated, Fields: response}, nil
}

func (service *ReportService) mockFor(task models.Task, users []models.User, now time.Time) *llm.Mock {
	assignee := ""
	if task.Assignee != nil {
		assignee = task.Assignee.Name
	}
	dueDate := "No date"
	if task.DueDate != nil {
		dueDate = task.DueDate.Format("2006-01-02")
	}
	return &llm.Mock{
		Today:     now.Format("2006-01-02"),
		UserNames: userNames(users),
		Task: &llm.TaskSnapshot{
			Title:           task.Title,
			Description:     task.Description,
			Status:          task.Status,
			Priority:        task.Priority,
			AssigneeName:    assignee,
			DueDate:         dueDate,
			Accomplishments: task.Accomplishments,
			Progress:        task.Progress,
		},
	}
}

// persist maps the structured response onto the task record: status,
// clamped progress, append-only accomplishments, the extended chat log, a
// real due date when one was returned, and a resolved assignee when a name
// matched. Reassignment mentions take precedence by construction because the
// returned assigneeName is resolved on every commit.
func (service *ReportService) persist(task models.Task, response llm.Response, history []models.ChatMessage, prompt string) (models.Task, error) {
	users, err := service.users.List()
	if err != nil {
		return models.Task{}, fmt.Errorf("load users: %w", err)
	}

	status := task.Status
	if response.StatusUpdate != "" && models.ValidStatus(response.StatusUpdate) {
		status = response.StatusUpdate
	}

	progress := task.Progress
	if response.ProgressUpdate != nil {
		progress = models.ClampProgress(*response.ProgressUpdate)
	}
	if status == models.StatusCompleted {
		progress = 100
	}

	priority := task.Priority
	if models.ValidPriority(response.Priority) {
		priority = response.Priority
	}

	assistantReply := response.SummarizedReport
	if assistantReply == "" {
		assistantReply = "Progress recorded."
	}
	transcript := append([]models.ChatMessage{}, history...)
	transcript = append(transcript,
		models.ChatMessage{Role: models.ChatRoleUser, Content: prompt},
		models.ChatMessage{Role: models.ChatRoleAssistant, Content: assistantReply},
	)
	chatLog, err := json.Marshal(transcript)
	if err != nil {
		return models.Task{}, fmt.Errorf("serialize chat log: %w", err)
	}

	updates := map[string]any{
		"status":          status,
		"progress":        progress,
		"priority":        priority,
		"accomplishments": appendAccomplishments(task.Accomplishments, response.Accomplishments),
		"chat_log":        string(chatLog),
	}
	if dueDate, ok := response.ParsedDueDate(); ok {
		updates["due_date"] = dueDate
	}
	if assignee := ResolveAssignee(response.AssigneeName, users); assignee != nil {
		updates["assignee_id"] = assignee.ID
	}

	return service.tasks.ApplyReport(task.ID, updates)
}

// ReportDraft is the caller-supplied update for the legacy explicit commit
// path.
type ReportDraft struct {
	Status          string `json:"status"`
	StatusUpdate    string `json:"statusUpdate"`
	Progress        *int   `json:"progress"`
	ProgressUpdate  *int   `json:"progressUpdate"`
	Priority        string `json:"priority"`
	Accomplishments string `json:"accomplishments"`
	DueDate         string `json:"dueDate"`
	AssigneeName    string `json:"assigneeName"`
}

// Commit is the legacy explicit path: the client already holds the structured
// update and asks for it to be persisted as-is.
func (service *ReportService) Commit(taskID string, draft ReportDraft, history []models.ChatMessage) (models.Task, error) {
	task, err := service.tasks.FindByID(taskID)
	if err != nil {
		return models.Task{}, err
	}
	users, err := service.users.List()
	if err != nil {
		return models.Task{}, fmt.Errorf("load users: %w", err)
	}

	status := task.Status
	if draft.StatusUpdate != "" && models.ValidStatus(draft.StatusUpdate) {
		status = draft.StatusUpdate
	} else if draft.Status != "" && models.ValidStatus(draft.Status) {
		status = draft.Status
	}

	progress := task.Progress
	if draft.ProgressUpdate != nil {
		progress = models.ClampProgress(*draft.ProgressUpdate)
	} else if draft.Progress != nil {
		progress = models.ClampProgress(*draft.Progress)
	}
	if status == models.StatusCompleted {
		progress = 100
	}

	priority := task.Priority
	if models.ValidPriority(draft.Priority) {
		priority = draft.Priority
	}

	chatLog, err := json.Marshal(history)
	if err != nil {
		return models.Task{}, fmt.Errorf("serialize chat log: %w", err)
	}

	updates := map[string]any{
		"status":          status,
		"progress":        progress,
		"priority":        priority,
		"accomplishments": appendAccomplishments(task.Accomplishments, draft.Accomplishments),
		"chat_log":        string(chatLog),
	}
	if dueDate, ok := parseDate(draft.DueDate); ok {
		updates["due_date"] = dueDate
	}
	if assignee := ResolveAssignee(draft.AssigneeName, users); assignee != nil {
		updates["assignee_id"] = assignee.ID
	}

	return service.tasks.ApplyReport(taskID, updates)
}

// appendAccomplishments keeps the log append-only: the existing text is an
// immutable prefix. A response that dropped or rewrote history is re-anchored
// onto the old log instead of replacing it.
func appendAccomplishments(existing string, updated string) string {
	if strings.TrimSpace(updated) == "" {
		return existing
	}
	if existing == "" || strings.HasPrefix(updated, existing) {
		return updated
	}
	return existing + "\n" + updated
}
