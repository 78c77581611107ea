package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIInvokeParsesStructuredContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %q", request.URL.Path)
		}
		if got := request.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected authorization header %q", got)
		}

		var payload map[string]any
		if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload["model"] != "gpt-4o" {
			t.Fatalf("unexpected model %v", payload["model"])
		}
		format, ok := payload["response_format"].(map[string]any)
		if !ok || format["type"] != "json_schema" {
			t.Fatalf("expected json_schema response format, got %v", payload["response_format"])
		}

		content := `{"status":"success","title":"Prepare slides","assigneeName":"Kim Chul-soo","dueDate":"2025-03-14","priority":"High"}`
		body := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		_ = json.NewEncoder(writer).Encode(body)
	}))
	defer server.Close()

	client := NewOpenAI(server.URL, "test-key", "gpt-4o")
	response, err := client.Invoke(context.Background(), Request{
		SystemPrompt: "system",
		Prompt:       "prepare slides by friday",
		Kind:         KindIntake,
	})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if response.Status != StatusSuccess || response.Title != "Prepare slides" {
		t.Fatalf("unexpected response %+v", response)
	}
	if response.Priority != "High" {
		t.Fatalf("unexpected priority %q", response.Priority)
	}
}

func TestOpenAIInvokeSurfacesProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer server.Close()

	client := NewOpenAI(server.URL, "bad-key", "gpt-4o")
	_, err := client.Invoke(context.Background(), Request{Prompt: "anything", Kind: KindIntake})

	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if providerErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", providerErr.StatusCode)
	}
	if providerErr.Message != "Incorrect API key provided" {
		t.Fatalf("expected upstream message, got %q", providerErr.Message)
	}
}

func TestOpenAIInvokeDegradesMalformedContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		body := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "not json at all"}},
			},
		}
		_ = json.NewEncoder(writer).Encode(body)
	}))
	defer server.Close()

	client := NewOpenAI(server.URL, "test-key", "gpt-4o")
	response, err := client.Invoke(context.Background(), Request{Prompt: "anything", Kind: KindIntake})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if response.Status != "" || response.Title != "" || response.Options != nil {
		t.Fatalf("malformed content should degrade to an empty response, got %+v", response)
	}
}
