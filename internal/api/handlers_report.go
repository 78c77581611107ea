package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yhkwon/taskpilot/internal/services"
)

// TaskReport records conversational progress against one task. The parsed
// update is committed in the same request unless the model asks for
// clarification. The action="commit" branch remains for clients that already
// hold a reviewed structured update.
func (handler *Handler) TaskReport(c *fiber.Ctx) error {
	taskID := c.Params("id")

	var input reportInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if input.wantsCommit() {
		if input.TaskData == nil {
			return apiError(c, fiber.StatusBadRequest, "Task data is required")
		}
		task, err := handler.reports.Commit(taskID, *input.TaskData, input.History)
		if err != nil {
			return pipelineError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "task": task})
	}

	outcome, err := handler.reports.Parse(c.UserContext(), services.ReportParseInput{
		TaskID:  taskID,
		Prompt:  input.Prompt,
		History: input.History,
	})
	if err != nil {
		return pipelineError(c, err)
	}

	if outcome.NeedsClarification {
		return c.JSON(fiber.Map{
			"success":            true,
			"needsClarification": true,
			"message":            outcome.Message,
			"options":            outcome.Options,
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"task":     outcome.Task,
		"taskData": outcome.Fields,
	})
}
