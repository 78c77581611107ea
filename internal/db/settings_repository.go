package db

import (
	"errors"

	"github.com/yhkwon/taskpilot/internal/models"
	"gorm.io/gorm"
)

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

// LoadOrInit returns the singleton settings row, creating it with defaults on
// first read.
func (repo *SettingsRepository) LoadOrInit() (models.Settings, error) {
	var settings models.Settings
	err := repo.database.
		Preload("LLMConfigs").
		First(&settings, "id = ?", models.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = defaultSettings()
		if err := repo.database.Create(&settings).Error; err != nil {
			return models.Settings{}, err
		}
		return settings, nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// SettingsUpdate carries one settings upsert. The active provider's key/model
// are mirrored into its per-provider config row in the same transaction.
type SettingsUpdate struct {
	LLMProvider    string
	LLMAPIKey      string
	LLMModel       string
	SystemPrompt   string
	ReportPrompt   string
	EmailEnabled   bool
	EmailFrequency string
	DeliveryTime   string
}

func (repo *SettingsRepository) Save(update SettingsUpdate) (models.Settings, error) {
	provider := update.LLMProvider
	if provider == "" {
		provider = models.ProviderOpenAI
	}
	model := update.LLMModel
	if model == "" {
		model = models.DefaultModelFor(provider)
	}
	frequency := update.EmailFrequency
	if frequency == "" {
		frequency = "daily"
	}
	deliveryTime := update.DeliveryTime
	if deliveryTime == "" {
		deliveryTime = "09:00 AM"
	}

	err := repo.database.Transaction(func(tx *gorm.DB) error {
		fields := map[string]any{
			"llm_provider":    provider,
			"llm_api_key":     update.LLMAPIKey,
			"llm_model":       model,
			"system_prompt":   update.SystemPrompt,
			"report_prompt":   update.ReportPrompt,
			"email_enabled":   update.EmailEnabled,
			"email_frequency": frequency,
			"delivery_time":   deliveryTime,
		}

		var existing models.Settings
		findErr := tx.First(&existing, "id = ?", models.SettingsID).Error
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			created := defaultSettings()
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
		} else if findErr != nil {
			return findErr
		}
		if err := tx.Model(&models.Settings{}).
			Where("id = ?", models.SettingsID).
			Updates(fields).Error; err != nil {
			return err
		}

		var config models.LLMConfig
		configErr := tx.First(&config, "provider = ?", provider).Error
		if errors.Is(configErr, gorm.ErrRecordNotFound) {
			config = models.LLMConfig{
				SettingsID: models.SettingsID,
				Provider:   provider,
				APIKey:     update.LLMAPIKey,
				Model:      model,
			}
			return tx.Create(&config).Error
		}
		if configErr != nil {
			return configErr
		}
		return tx.Model(&models.LLMConfig{}).
			Where("provider = ?", provider).
			Updates(map[string]any{"api_key": update.LLMAPIKey, "model": model}).Error
	})
	if err != nil {
		return models.Settings{}, err
	}

	return repo.LoadOrInit()
}

func defaultSettings() models.Settings {
	return models.Settings{
		ID:             models.SettingsID,
		LLMProvider:    models.ProviderOpenAI,
		LLMModel:       models.DefaultOpenAIModel,
		EmailEnabled:   true,
		EmailFrequency: "daily",
		DeliveryTime:   "09:00 AM",
	}
}
