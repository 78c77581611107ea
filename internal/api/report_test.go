package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/yhkwon/taskpilot/internal/models"
	"gorm.io/gorm"
)

func createTestTask(t *testing.T, database *gorm.DB, task models.Task) models.Task {
	t.Helper()
	if task.Status == "" {
		task.Status = models.StatusInProgress
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if err := database.Create(&task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func reportTask(t *testing.T, app *fiber.App, taskID string, prompt string) map[string]any {
	t.Helper()

	response := performJSON(t, app, http.MethodPost, "/api/tasks/"+taskID+"/report", map[string]any{
		"prompt": prompt,
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("report status %d", response.StatusCode)
	}
	return decodeJSONMap(t, response)
}

func TestTaskReportAutoCommitsProgress(t *testing.T) {
	app, database := newTestApp(t)
	created := createTestTask(t, database, models.Task{Title: "Data migration", Progress: 30})

	payload := reportTask(t, app, created.ID, "reached about 60% on the migration scripts")
	task, ok := payload["task"].(map[string]any)
	if !ok {
		t.Fatalf("missing task in %v", payload)
	}
	if task["status"] != models.StatusInProgress {
		t.Fatalf("expected In Progress, got %v", task["status"])
	}
	if task["progress"] != float64(60) {
		t.Fatalf("expected progress 60, got %v", task["progress"])
	}

	accomplishments, _ := task["accomplishments"].(string)
	if strings.Count(accomplishments, "\n") != 0 {
		t.Fatalf("expected exactly one log line, got %q", accomplishments)
	}
	today := time.Now().UTC().Format("2006-01-02")
	if !strings.HasPrefix(accomplishments, "["+today+"] ") {
		t.Fatalf("log line must carry today's date, got %q", accomplishments)
	}

	chatLog, _ := task["chatLog"].(string)
	if !strings.Contains(chatLog, "reached about 60%") {
		t.Fatalf("transcript must include the user turn, got %q", chatLog)
	}

	// The write is already visible to a plain read.
	var stored models.Task
	if err := database.First(&stored, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("load task: %v", err)
	}
	if stored.Progress != 60 {
		t.Fatalf("expected committed progress 60, got %d", stored.Progress)
	}
}

func TestTaskReportAccomplishmentsAreAppendOnly(t *testing.T) {
	app, database := newTestApp(t)
	created := createTestTask(t, database, models.Task{Title: "Data migration", Progress: 20})

	first := reportTask(t, app, created.ID, "set up the staging environment")
	firstLog, _ := first["task"].(map[string]any)["accomplishments"].(string)
	if firstLog == "" {
		t.Fatal("expected a first log line")
	}

	second := reportTask(t, app, created.ID, "migrated the user table")
	secondLog, _ := second["task"].(map[string]any)["accomplishments"].(string)
	if !strings.HasPrefix(secondLog, firstLog) {
		t.Fatalf("earlier entries must stay an immutable prefix: %q then %q", firstLog, secondLog)
	}
	if strings.Count(secondLog, "\n") != 1 {
		t.Fatalf("expected two log lines after two reports, got %q", secondLog)
	}
}

func TestTaskReportReassignsByMention(t *testing.T) {
	app, database := newTestApp(t)
	kimID := createTestUser(t, app, "Kim Chul-soo", "kim@example.com")
	leeID := createTestUser(t, app, "Lee Young-hee", "lee@example.com")

	created := createTestTask(t, database, models.Task{
		Title:      "Data migration",
		Progress:   50,
		AssigneeID: &kimID,
	})

	payload := reportTask(t, app, created.ID, "please hand this over to @{Lee Young-hee}")
	task := payload["task"].(map[string]any)
	if task["assigneeId"] != leeID {
		t.Fatalf("expected reassignment to Lee, got %v", task["assigneeId"])
	}
	accomplishments, _ := task["accomplishments"].(string)
	if !strings.Contains(accomplishments, "Reassigned: Kim Chul-soo -> Lee Young-hee") {
		t.Fatalf("expected reassignment note, got %q", accomplishments)
	}
}

func TestTaskReportCompletionAwaitsApproval(t *testing.T) {
	app, database := newTestApp(t)
	created := createTestTask(t, database, models.Task{Title: "Data migration", Progress: 80})

	payload := reportTask(t, app, created.ID, "everything is done now")
	task := payload["task"].(map[string]any)
	if task["status"] != models.StatusPendingApproval {
		t.Fatalf("a completion claim needs approval, got %v", task["status"])
	}
	if task["progress"] != float64(100) {
		t.Fatalf("expected progress 100, got %v", task["progress"])
	}
}

func TestTaskReportMissingTask(t *testing.T) {
	app, _ := newTestApp(t)

	response := performJSON(t, app, http.MethodPost, "/api/tasks/no-such-task/report", map[string]any{
		"prompt": "anything",
	})
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", response.StatusCode)
	}
	payload := decodeJSONMap(t, response)
	if payload["error"] != "Task not found" {
		t.Fatalf("unexpected error payload %v", payload)
	}
}

func TestTaskReportExplicitCommit(t *testing.T) {
	app, database := newTestApp(t)
	created := createTestTask(t, database, models.Task{Title: "Data migration", Progress: 40})

	progress := 75
	response := performJSON(t, app, http.MethodPost, "/api/tasks/"+created.ID+"/report", map[string]any{
		"action": "commit",
		"taskData": map[string]any{
			"statusUpdate":    models.StatusInProgress,
			"progressUpdate":  progress,
			"accomplishments": "verified the row counts",
		},
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("commit status %d", response.StatusCode)
	}
	payload := decodeJSONMap(t, response)
	task := payload["task"].(map[string]any)
	if task["progress"] != float64(75) {
		t.Fatalf("expected progress 75, got %v", task["progress"])
	}
	if task["accomplishments"] != "verified the row counts" {
		t.Fatalf("unexpected accomplishments %v", task["accomplishments"])
	}
}
