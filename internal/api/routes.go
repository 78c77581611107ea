package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	tasks := api.Group("/tasks")
	tasks.Get("", handler.ListTasks)
	tasks.Get("/:id", handler.GetTask)
	tasks.Post("/intake", handler.TaskIntake)
	tasks.Post("/:id/report", handler.TaskReport)
	tasks.Patch("/:id", handler.UpdateTask)
	tasks.Delete("/:id", handler.DeleteTask)

	users := api.Group("/users")
	users.Get("", handler.ListUsers)
	users.Post("", handler.CreateUser)
	users.Patch("/:id", handler.UpdateUser)
	users.Delete("/:id", handler.DeleteUser)

	api.Get("/settings", handler.GetSettings)
	api.Post("/settings", handler.SaveSettings)

	templates := api.Group("/prompt-templates")
	templates.Get("", handler.ListPromptTemplates)
	templates.Post("", handler.CreatePromptTemplate)
	templates.Patch("/:id", handler.UpdatePromptTemplate)
	templates.Delete("/:id", handler.DeletePromptTemplate)

	api.Post("/upload", handler.UploadFile)
}
