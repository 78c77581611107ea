package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Anthropic adapts the Messages API to the gateway contract. The SDK has no
// schema-constrained generation mode, so the JSON contract is carried by the
// prompt and enforced by Response.Validate after parsing.
type Anthropic struct {
	client anthropic.Client
	model  string
}

func NewAnthropic(apiKey string, model string) *Anthropic {
	return &Anthropic{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (gateway *Anthropic) Invoke(ctx context.Context, request Request) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	systemPrompt := request.SystemPrompt +
		"\n\nRespond with ONLY a single JSON object matching the agreed schema. No markdown, no explanations."

	message, err := gateway.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(gateway.model),
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(request.Conversation())),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return Response{}, &ProviderError{StatusCode: apiErr.StatusCode, Message: apiErr.Error()}
		}
		return Response{}, err
	}

	var content strings.Builder
	for _, block := range message.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			content.WriteString(variant.Text)
		}
	}

	return decodeStructuredContent(stripCodeFence(content.String())), nil
}

// stripCodeFence removes a ```json ... ``` wrapper if the model added one.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
