// Package llm invokes the configured language-model provider with a
// schema-constrained request and returns a typed, validated response. When no
// credential is configured, a deterministic mock responder stands in so the
// system stays usable and testable without a live key.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Kind selects which response contract a request is held to.
type Kind int

const (
	KindIntake Kind = iota
	KindReport
)

// Message is one prior conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single provider invocation: one system instruction plus a
// flattened conversation. No retries are performed.
type Request struct {
	SystemPrompt string
	History      []Message
	Prompt       string
	Attachments  []string
	Kind         Kind
}

// Conversation renders the history and current message into the flat text
// block sent as the user turn.
func (request Request) Conversation() string {
	var builder strings.Builder
	if len(request.History) > 0 {
		builder.WriteString("Conversation History:\n")
		for _, message := range request.History {
			role := "User"
			if message.Role == "assistant" {
				role = "Assistant"
			}
			builder.WriteString(fmt.Sprintf("%s: %s\n", role, message.Content))
		}
		builder.WriteString("User: " + request.Prompt)
	} else {
		builder.WriteString("User Request: " + request.Prompt)
	}

	if len(request.Attachments) > 0 {
		builder.WriteString(fmt.Sprintf("\n(Attachments present: %s)", strings.Join(request.Attachments, ", ")))
	}
	return builder.String()
}

// Gateway is the outbound LLM call. Implementations return either a parsed
// structured response or a transport/provider error; they never retry.
type Gateway interface {
	Invoke(ctx context.Context, request Request) (Response, error)
}

// ProviderError carries a provider's error message and HTTP status code.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (err *ProviderError) Error() string {
	return fmt.Sprintf("llm provider error %d: %s", err.StatusCode, err.Message)
}
