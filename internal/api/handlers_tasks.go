package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/yhkwon/taskpilot/internal/db"
	"github.com/yhkwon/taskpilot/internal/models"
	"gorm.io/gorm"
)

func (handler *Handler) ListTasks(c *fiber.Ctx) error {
	tasks, err := handler.repos.Tasks.List(db.TaskFilter{
		AssigneeID: c.Query("assigneeId"),
		Status:     c.Query("status"),
	})
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load tasks")
	}
	return c.JSON(tasks)
}

func (handler *Handler) GetTask(c *fiber.Ctx) error {
	task, err := handler.repos.Tasks.FindByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "Task not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "Failed to load task")
	}
	return c.JSON(task)
}

func (handler *Handler) UpdateTask(c *fiber.Ctx) error {
	taskID := c.Params("id")

	var input taskPatchInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			return apiError(c, fiber.StatusBadRequest, "Invalid status")
		}
		updates["status"] = *input.Status
		if *input.Status == models.StatusCompleted {
			updates["progress"] = 100
		}
	}
	if input.Priority != nil {
		if !models.ValidPriority(*input.Priority) {
			return apiError(c, fiber.StatusBadRequest, "Invalid priority")
		}
		updates["priority"] = *input.Priority
	}
	if input.Progress != nil {
		updates["progress"] = models.ClampProgress(*input.Progress)
	}
	if input.DueDate != nil {
		if *input.DueDate == "" {
			updates["due_date"] = nil
		} else {
			parsed, err := time.Parse("2006-01-02", *input.DueDate)
			if err != nil {
				return apiError(c, fiber.StatusBadRequest, "Invalid due date")
			}
			updates["due_date"] = parsed
		}
	}
	if input.AssigneeID != nil {
		if *input.AssigneeID == "" {
			updates["assignee_id"] = nil
		} else {
			updates["assignee_id"] = *input.AssigneeID
		}
	}
	if input.Accomplishments != nil {
		updates["accomplishments"] = *input.Accomplishments
	}

	if len(updates) == 0 {
		return apiError(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := handler.repos.Tasks.UpdateByID(taskID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "Task not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "Failed to update task")
	}

	task, err := handler.repos.Tasks.FindByID(taskID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load task")
	}
	return c.JSON(task)
}

func (handler *Handler) DeleteTask(c *fiber.Ctx) error {
	if err := handler.repos.Tasks.Delete(c.Params("id")); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to delete task")
	}
	return c.JSON(fiber.Map{"success": true})
}
