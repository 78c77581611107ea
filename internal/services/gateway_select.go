package services

import (
	"strings"

	"github.com/yhkwon/taskpilot/internal/llm"
	"github.com/yhkwon/taskpilot/internal/models"
)

// selectGateway picks the provider for the workspace settings. An empty
// effective credential short-circuits to the deterministic mock responder
// instead of calling out.
func selectGateway(settings models.Settings, openAIBaseURL string, mock llm.Gateway) llm.Gateway {
	apiKey, model := settings.EffectiveCredentials()
	if strings.TrimSpace(apiKey) == "" {
		return mock
	}
	switch settings.LLMProvider {
	case models.ProviderAnthropic:
		return llm.NewAnthropic(apiKey, model)
	default:
		return llm.NewOpenAI(openAIBaseURL, apiKey, model)
	}
}

func toConversation(history []models.ChatMessage) []llm.Message {
	messages := make([]llm.Message, 0, len(history))
	for _, message := range history {
		messages = append(messages, llm.Message{Role: message.Role, Content: message.Content})
	}
	return messages
}

func attachmentNames(attachments []models.Attachment) []string {
	names := make([]string, 0, len(attachments))
	for _, attachment := range attachments {
		names = append(names, attachment.Name)
	}
	return names
}

func userNames(users []models.User) []string {
	names := make([]string, 0, len(users))
	for _, user := range users {
		names = append(names, user.Name)
	}
	return names
}
