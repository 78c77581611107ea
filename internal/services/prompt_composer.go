package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/yhkwon/taskpilot/internal/models"
)

// Recognized prompt placeholders. Unknown tokens in a template are left
// verbatim so templates may reference placeholders a future version defines.
const (
	PlaceholderToday           = "{TODAY}"
	PlaceholderNow             = "{NOW}"
	PlaceholderUsersList       = "{USERS_LIST}"
	PlaceholderTitle           = "{TITLE}"
	PlaceholderDescription     = "{DESCRIPTION}"
	PlaceholderStatus          = "{STATUS}"
	PlaceholderProgress        = "{PROGRESS}"
	PlaceholderPriority        = "{PRIORITY}"
	PlaceholderAssignee        = "{ASSIGNEE}"
	PlaceholderOldAssignee     = "{OLD_ASSIGNEE}"
	PlaceholderAvailableUsers  = "{AVAILABLE_USERS}"
	PlaceholderDueDate         = "{DUE_DATE}"
	PlaceholderAccomplishments = "{EXISTING_ACCOMPLISHMENTS}"
)

// ComposePrompt concatenates the base template with an optional task-specific
// addendum, then substitutes every recognized placeholder in a single pass.
// strings.Replacer never rescans replaced text, so a substituted value that
// itself looks like a placeholder stays as-is.
func ComposePrompt(baseTemplate string, addendum string, context map[string]string) string {
	prompt := baseTemplate
	if strings.TrimSpace(addendum) != "" {
		prompt += "\n\nSpecific requirements for this task:\n" + addendum
	}

	pairs := make([]string, 0, len(context)*2)
	for placeholder, value := range context {
		pairs = append(pairs, placeholder, value)
	}
	return strings.NewReplacer(pairs...).Replace(prompt)
}

// IntakeContext builds the substitutions for the task-creation prompt.
func IntakeContext(now time.Time, users []models.User) map[string]string {
	lines := make([]string, 0, len(users))
	for _, user := range users {
		lines = append(lines, fmt.Sprintf("- %s (%s)", user.Name, user.Role))
	}

	return map[string]string{
		PlaceholderToday:     now.Format("2006-01-02"),
		PlaceholderNow:       now.Format("15:04:05"),
		PlaceholderUsersList: strings.Join(lines, "\n"),
	}
}

// ReportContext builds the substitutions for the progress-report prompt,
// with sentinels for absent optional fields.
func ReportContext(now time.Time, task models.Task, users []models.User) map[string]string {
	assignee := "Unassigned"
	if task.Assignee != nil {
		assignee = task.Assignee.Name
	}

	description := task.Description
	if description == "" {
		description = "No description"
	}

	dueDate := "No date"
	if task.DueDate != nil {
		dueDate = task.DueDate.Format("2006-01-02")
	}

	names := make([]string, 0, len(users))
	for _, user := range users {
		names = append(names, user.Name)
	}

	return map[string]string{
		PlaceholderToday:           now.Format("2006-01-02"),
		PlaceholderNow:             now.Format("15:04:05"),
		PlaceholderTitle:           task.Title,
		PlaceholderDescription:     description,
		PlaceholderStatus:          task.Status,
		PlaceholderProgress:        fmt.Sprintf("%d", task.Progress),
		PlaceholderPriority:        task.Priority,
		PlaceholderAssignee:        assignee,
		PlaceholderOldAssignee:     assignee,
		PlaceholderAvailableUsers:  strings.Join(names, ", "),
		PlaceholderDueDate:         dueDate,
		PlaceholderAccomplishments: task.Accomplishments,
	}
}
