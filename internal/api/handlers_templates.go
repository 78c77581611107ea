package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/yhkwon/taskpilot/internal/models"
	"gorm.io/gorm"
)

func (handler *Handler) ListPromptTemplates(c *fiber.Ctx) error {
	templates, err := handler.repos.Templates.List()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load templates")
	}
	return c.JSON(templates)
}

func (handler *Handler) CreatePromptTemplate(c *fiber.Ctx) error {
	var input templateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return apiError(c, fiber.StatusBadRequest, "Name is required")
	}
	if input.Content == nil || strings.TrimSpace(*input.Content) == "" {
		return apiError(c, fiber.StatusBadRequest, "Content is required")
	}

	template := models.PromptTemplate{
		Name:    strings.TrimSpace(*input.Name),
		Content: *input.Content,
	}
	if input.Description != nil {
		template.Description = *input.Description
	}

	if err := handler.repos.Templates.Create(&template); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to create template")
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

func (handler *Handler) UpdatePromptTemplate(c *fiber.Ctx) error {
	templateID := c.Params("id")

	var input templateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Content != nil {
		updates["content"] = *input.Content
	}
	if len(updates) == 0 {
		return apiError(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := handler.repos.Templates.UpdateByID(templateID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "Template not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "Failed to update template")
	}

	template, err := handler.repos.Templates.FindByID(templateID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load template")
	}
	return c.JSON(template)
}

func (handler *Handler) DeletePromptTemplate(c *fiber.Ctx) error {
	if err := handler.repos.Templates.Delete(c.Params("id")); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to delete template")
	}
	return c.JSON(fiber.Map{"success": true})
}
