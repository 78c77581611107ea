package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/yhkwon/taskpilot/internal/llm"
	"github.com/yhkwon/taskpilot/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// pipelineError maps intake/report failures onto the error taxonomy: input
// validation and missing records become client errors, provider failures keep
// the provider's status code and message, everything else is a 500 with the
// underlying message.
func pipelineError(c *fiber.Ctx, err error) error {
	var providerErr *llm.ProviderError
	if errors.As(err, &providerErr) {
		status := providerErr.StatusCode
		if status < 400 {
			status = fiber.StatusBadGateway
		}
		return apiError(c, status, providerErr.Message)
	}
	if errors.Is(err, services.ErrPromptRequired) {
		return apiError(c, fiber.StatusBadRequest, "Prompt or history is required")
	}
	if errors.Is(err, services.ErrTitleRequired) {
		return apiError(c, fiber.StatusBadRequest, "Task title is required")
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apiError(c, fiber.StatusNotFound, "Task not found")
	}
	return apiError(c, fiber.StatusInternalServerError, err.Error())
}
