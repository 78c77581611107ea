package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yhkwon/taskpilot/internal/db"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	settings, err := handler.repos.Settings.LoadOrInit()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load settings")
	}
	return c.JSON(settings)
}

func (handler *Handler) SaveSettings(c *fiber.Ctx) error {
	var input settingsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	current, err := handler.repos.Settings.LoadOrInit()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load settings")
	}
	emailEnabled := current.EmailEnabled
	if input.EmailEnabled != nil {
		emailEnabled = *input.EmailEnabled
	}

	settings, err := handler.repos.Settings.Save(db.SettingsUpdate{
		LLMProvider:    input.LLMProvider,
		LLMAPIKey:      input.LLMAPIKey,
		LLMModel:       input.LLMModel,
		SystemPrompt:   input.SystemPrompt,
		ReportPrompt:   input.ReportPrompt,
		EmailEnabled:   emailEnabled,
		EmailFrequency: input.EmailFrequency,
		DeliveryTime:   input.DeliveryTime,
	})
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to save settings")
	}
	return c.JSON(settings)
}
