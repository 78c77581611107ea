package api

import (
	"net/http"
	"testing"
)

func TestPromptTemplateLifecycle(t *testing.T) {
	app, _ := newTestApp(t)

	response := performJSON(t, app, http.MethodPost, "/api/prompt-templates", map[string]any{
		"name":        "Bug report",
		"description": "For incoming defect reports",
		"content":     "Always ask for reproduction steps.",
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d", response.StatusCode)
	}
	created := decodeJSONMap(t, response)
	templateID, _ := created["id"].(string)
	if templateID == "" {
		t.Fatalf("missing template id in %v", created)
	}

	response = performJSON(t, app, http.MethodGet, "/api/prompt-templates", nil)
	if templates := decodeJSONList(t, response); len(templates) != 1 {
		t.Fatalf("expected one template, got %d", len(templates))
	}

	response = performJSON(t, app, http.MethodPatch, "/api/prompt-templates/"+templateID, map[string]any{
		"content": "Always ask for reproduction steps and logs.",
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("patch status %d", response.StatusCode)
	}
	updated := decodeJSONMap(t, response)
	if updated["content"] != "Always ask for reproduction steps and logs." {
		t.Fatalf("unexpected content %v", updated["content"])
	}
	if updated["name"] != "Bug report" {
		t.Fatalf("untouched fields must survive, got %v", updated["name"])
	}

	response = performJSON(t, app, http.MethodDelete, "/api/prompt-templates/"+templateID, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("delete status %d", response.StatusCode)
	}
	response.Body.Close()

	response = performJSON(t, app, http.MethodGet, "/api/prompt-templates", nil)
	if templates := decodeJSONList(t, response); len(templates) != 0 {
		t.Fatalf("expected no templates, got %d", len(templates))
	}
}

func TestCreatePromptTemplateValidation(t *testing.T) {
	app, _ := newTestApp(t)

	response := performJSON(t, app, http.MethodPost, "/api/prompt-templates", map[string]any{
		"content": "orphan content",
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", response.StatusCode)
	}
	response.Body.Close()

	response = performJSON(t, app, http.MethodPost, "/api/prompt-templates", map[string]any{
		"name": "No content",
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing content, got %d", response.StatusCode)
	}
	response.Body.Close()

	response = performJSON(t, app, http.MethodPatch, "/api/prompt-templates/missing", map[string]any{
		"content": "anything",
	})
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", response.StatusCode)
	}
	response.Body.Close()
}
