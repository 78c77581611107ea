package api

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadFile stores one multipart file under a random name, keeping the
// original extension, and returns the metadata the intake flow attaches to a
// task.
func (handler *Handler) UploadFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "File is required")
	}

	if err := os.MkdirAll(handler.uploadDir, 0o755); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to prepare upload directory")
	}

	storedName := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveFile(file, filepath.Join(handler.uploadDir, storedName)); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to store file")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"file": fiber.Map{
			"name": file.Filename,
			"path": "/uploads/" + storedName,
			"size": file.Size,
			"type": file.Header.Get("Content-Type"),
		},
	})
}
