package api

import (
	"errors"
	"time"

	"github.com/yhkwon/taskpilot/internal/db"
	"github.com/yhkwon/taskpilot/internal/llm"
	"github.com/yhkwon/taskpilot/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	repos     *db.Repositories
	intake    *services.IntakeService
	reports   *services.ReportService
	uploadDir string
}

type Config struct {
	Database  *gorm.DB
	UploadDir string
	Location  *time.Location
	// OpenAIBaseURL overrides the OpenAI endpoint; tests point it at a local
	// stub server.
	OpenAIBaseURL string
}

func NewHandler(config Config) (*Handler, error) {
	if config.Database == nil {
		return nil, errors.New("database is required")
	}
	location := config.Location
	if location == nil {
		location = time.Local
	}
	baseURL := config.OpenAIBaseURL
	if baseURL == "" {
		baseURL = llm.DefaultOpenAIBaseURL
	}

	repos := db.NewRepositories(config.Database)

	intake := services.NewIntakeService(repos.Settings, repos.Users, repos.Tasks, repos.Templates, baseURL)
	reports := services.NewReportService(repos.Settings, repos.Users, repos.Tasks, baseURL)

	// Prompt dates and accomplishment log lines follow the configured
	// timezone, not the process default.
	clock := func() time.Time { return time.Now().In(location) }
	intake.SetClock(clock)
	reports.SetClock(clock)

	return &Handler{
		repos:     repos,
		intake:    intake,
		reports:   reports,
		uploadDir: config.UploadDir,
	}, nil
}
