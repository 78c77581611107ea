package api

import (
	"net/http"
	"testing"

	"github.com/yhkwon/taskpilot/internal/models"
)

func TestListUsersIncludesTaskCounts(t *testing.T) {
	app, database := newTestApp(t)
	kimID := createTestUser(t, app, "Kim Chul-soo", "kim@example.com")
	createTestUser(t, app, "Lee Young-hee", "lee@example.com")

	createTestTask(t, database, models.Task{Title: "First", AssigneeID: &kimID})
	createTestTask(t, database, models.Task{Title: "Second", AssigneeID: &kimID})
	createTestTask(t, database, models.Task{Title: "Unassigned"})

	response := performJSON(t, app, http.MethodGet, "/api/users", nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("list status %d", response.StatusCode)
	}
	users := decodeJSONList(t, response)
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	counts := map[string]float64{}
	for _, user := range users {
		name, _ := user["name"].(string)
		count, _ := user["taskCount"].(float64)
		counts[name] = count
	}
	if counts["Kim Chul-soo"] != 2 {
		t.Fatalf("expected 2 tasks for Kim, got %v", counts["Kim Chul-soo"])
	}
	if counts["Lee Young-hee"] != 0 {
		t.Fatalf("expected 0 tasks for Lee, got %v", counts["Lee Young-hee"])
	}
}

func TestCreateUserValidation(t *testing.T) {
	app, _ := newTestApp(t)

	response := performJSON(t, app, http.MethodPost, "/api/users", map[string]any{"email": "kim@example.com"})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", response.StatusCode)
	}
	response.Body.Close()

	response = performJSON(t, app, http.MethodPost, "/api/users", map[string]any{"name": "Kim Chul-soo"})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing email, got %d", response.StatusCode)
	}
	response.Body.Close()
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)
	createTestUser(t, app, "Kim Chul-soo", "kim@example.com")

	response := performJSON(t, app, http.MethodPost, "/api/users", map[string]any{
		"name":  "Another Kim",
		"email": "kim@example.com",
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", response.StatusCode)
	}
	payload := decodeJSONMap(t, response)
	if payload["error"] != "Email already exists" {
		t.Fatalf("unexpected error payload %v", payload)
	}
}

func TestUpdateAndDeleteUser(t *testing.T) {
	app, _ := newTestApp(t)
	userID := createTestUser(t, app, "Kim Chul-soo", "kim@example.com")

	response := performJSON(t, app, http.MethodPatch, "/api/users/"+userID, map[string]any{
		"role": models.RoleManager,
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("patch status %d", response.StatusCode)
	}
	updated := decodeJSONMap(t, response)
	if updated["role"] != models.RoleManager {
		t.Fatalf("expected Manager role, got %v", updated["role"])
	}

	response = performJSON(t, app, http.MethodPatch, "/api/users/missing", map[string]any{"role": models.RoleViewer})
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for missing user, got %d", response.StatusCode)
	}
	response.Body.Close()

	response = performJSON(t, app, http.MethodDelete, "/api/users/"+userID, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("delete status %d", response.StatusCode)
	}
	response.Body.Close()

	response = performJSON(t, app, http.MethodGet, "/api/users", nil)
	if remaining := decodeJSONList(t, response); len(remaining) != 0 {
		t.Fatalf("expected empty directory, got %d users", len(remaining))
	}
}
