package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// requestTimeout bounds every provider call; a hung provider must not block a
// request forever.
const requestTimeout = 60 * time.Second

// OpenAI talks to the chat-completions endpoint with a strict json_schema
// response format.
type OpenAI struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewOpenAI(baseURL string, apiKey string, model string) *OpenAI {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	return &OpenAI{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type openAIChatRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	ResponseFormat map[string]any  `json:"response_format"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (client *OpenAI) Invoke(ctx context.Context, request Request) (Response, error) {
	schemaName, schema := schemaFor(request.Kind)
	payload := openAIChatRequest{
		Model: client.model,
		Messages: []openAIMessage{
			{Role: "system", Content: request.SystemPrompt},
			{Role: "user", Content: request.Conversation()},
		},
		ResponseFormat: map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   schemaName,
				"strict": true,
				"schema": schema,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("marshal chat request: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("create chat request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Authorization", "Bearer "+client.apiKey)

	httpResponse, err := client.httpClient.Do(httpRequest)
	if err != nil {
		return Response{}, fmt.Errorf("call openai: %w", err)
	}
	defer httpResponse.Body.Close()

	data, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read openai response: %w", err)
	}

	var parsed openAIChatResponse
	if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
		message := "failed to call openai"
		if json.Unmarshal(data, &parsed) == nil && parsed.Error != nil && parsed.Error.Message != "" {
			message = parsed.Error.Message
		}
		return Response{}, &ProviderError{StatusCode: httpResponse.StatusCode, Message: message}
	}

	if err := json.Unmarshal(data, &parsed); err != nil {
		return Response{}, fmt.Errorf("decode openai response: %w", err)
	}

	var content string
	if len(parsed.Choices) > 0 {
		content = parsed.Choices[0].Message.Content
	}
	return decodeStructuredContent(content), nil
}

// decodeStructuredContent parses the model's JSON payload. Malformed content
// in a 2xx response degrades to an empty object; downstream code assumes no
// field beyond status.
func decodeStructuredContent(content string) Response {
	var response Response
	if err := json.Unmarshal([]byte(content), &response); err != nil {
		return Response{}
	}
	return response
}
