package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettingsID is the fixed key of the singleton settings row.
const SettingsID = "global"

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const (
	DefaultOpenAIModel    = "gpt-4o"
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
)

// Settings holds the shared workspace configuration. LLMAPIKey and LLMModel
// are the legacy single-provider fields; an LLMConfig row for the active
// provider takes precedence when present.
type Settings struct {
	ID             string      `gorm:"primaryKey" json:"id"`
	LLMProvider    string      `gorm:"column:llm_provider;not null;default:openai" json:"llmProvider"`
	LLMAPIKey      string      `gorm:"column:llm_api_key" json:"llmApiKey"`
	LLMModel       string      `gorm:"column:llm_model" json:"llmModel"`
	SystemPrompt   string      `json:"systemPrompt"`
	ReportPrompt   string      `json:"reportPrompt"`
	EmailEnabled   bool        `gorm:"not null;default:true" json:"emailEnabled"`
	EmailFrequency string      `gorm:"not null;default:daily" json:"emailFrequency"`
	DeliveryTime   string      `gorm:"not null;default:'09:00 AM'" json:"deliveryTime"`
	LLMConfigs     []LLMConfig `gorm:"foreignKey:SettingsID" json:"llmConfigs"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// LLMConfig is a per-provider credential/model override.
type LLMConfig struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	SettingsID string    `gorm:"not null;index" json:"-"`
	Provider   string    `gorm:"uniqueIndex;not null" json:"provider"`
	APIKey     string    `gorm:"column:api_key" json:"apiKey"`
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (LLMConfig) TableName() string { return "llm_configs" }

func (config *LLMConfig) BeforeCreate(*gorm.DB) error {
	if config.ID == "" {
		config.ID = uuid.NewString()
	}
	return nil
}

// EffectiveCredentials returns the API key and model for the active provider,
// preferring the provider-specific LLMConfig row over the legacy fields.
func (settings *Settings) EffectiveCredentials() (apiKey string, model string) {
	apiKey = settings.LLMAPIKey
	model = settings.LLMModel
	for _, config := range settings.LLMConfigs {
		if config.Provider != settings.LLMProvider {
			continue
		}
		if config.APIKey != "" {
			apiKey = config.APIKey
		}
		if config.Model != "" {
			model = config.Model
		}
		break
	}
	if model == "" {
		model = DefaultModelFor(settings.LLMProvider)
	}
	return apiKey, model
}

func DefaultModelFor(provider string) string {
	if provider == ProviderAnthropic {
		return DefaultAnthropicModel
	}
	return DefaultOpenAIModel
}
