package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yhkwon/taskpilot/internal/services"
)

// TaskIntake drives the two-stage intake flow. On parse the request text is
// turned into task fields (or a clarifying question) and nothing is written.
// On action="commit" the reviewed fields are persisted as a new Pending task.
func (handler *Handler) TaskIntake(c *fiber.Ctx) error {
	var input intakeInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if input.wantsCommit() {
		if input.TaskData == nil {
			return apiError(c, fiber.StatusBadRequest, "Task data is required")
		}
		task, err := handler.intake.Commit(services.IntakeCommitInput{
			Draft:       *input.TaskData,
			Attachments: input.Attachments,
			TemplateID:  input.TemplateID,
		})
		if err != nil {
			return pipelineError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "task": task})
	}

	outcome, err := handler.intake.Parse(c.UserContext(), services.IntakeParseInput{
		Prompt:      input.Prompt,
		History:     input.History,
		Attachments: input.Attachments,
		TemplateID:  input.TemplateID,
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
		"success":           true,
		"needsConfirmation": true,
		"taskData":          outcome.Fields,
	})
}
