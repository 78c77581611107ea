package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/yhkwon/taskpilot/internal/db"
	"github.com/yhkwon/taskpilot/internal/models"
	"gorm.io/gorm"
)

// ListUsers returns the directory with each member's assigned-task count
// merged in.
func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := handler.repos.Users.List()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load users")
	}
	counts, err := handler.repos.Users.TaskCounts()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load task counts")
	}

	payload := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		payload = append(payload, fiber.Map{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"role":      user.Role,
			"avatar":    user.Avatar,
			"createdAt": user.CreatedAt,
			"updatedAt": user.UpdatedAt,
			"taskCount": counts[user.ID],
		})
	}
	return c.JSON(payload)
}

func (handler *Handler) CreateUser(c *fiber.Ctx) error {
	var input userInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return apiError(c, fiber.StatusBadRequest, "Name is required")
	}
	if input.Email == nil || strings.TrimSpace(*input.Email) == "" {
		return apiError(c, fiber.StatusBadRequest, "Email is required")
	}

	user := models.User{
		Name:  strings.TrimSpace(*input.Name),
		Email: strings.TrimSpace(*input.Email),
		Role:  models.RoleMember,
	}
	if input.Role != nil && *input.Role != "" {
		user.Role = *input.Role
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}

	if err := handler.repos.Users.Create(&user); err != nil {
		return userWriteError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (handler *Handler) UpdateUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	var input userInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		updates["email"] = strings.TrimSpace(*input.Email)
	}
	if input.Role != nil {
		updates["role"] = *input.Role
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}
	if len(updates) == 0 {
		return apiError(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := handler.repos.Users.UpdateByID(userID, updates); err != nil {
		return userWriteError(c, err)
	}

	user, err := handler.repos.Users.FindByID(userID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load user")
	}
	return c.JSON(user)
}

func (handler *Handler) DeleteUser(c *fiber.Ctx) error {
	if err := handler.repos.Users.Delete(c.Params("id")); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to delete user")
	}
	return c.JSON(fiber.Map{"success": true})
}

func userWriteError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, db.ErrDuplicateEmail):
		return apiError(c, fiber.StatusBadRequest, "Email already exists")
	case errors.Is(err, db.ErrDuplicateName):
		return apiError(c, fiber.StatusBadRequest, "Name already exists")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apiError(c, fiber.StatusNotFound, "User not found")
	default:
		return apiError(c, fiber.StatusInternalServerError, "Failed to save user")
	}
}
