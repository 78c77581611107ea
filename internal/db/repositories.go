package db

import "gorm.io/gorm"

type Repositories struct {
	Users     *UserRepository
	Tasks     *TaskRepository
	Settings  *SettingsRepository
	Templates *PromptTemplateRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(database),
		Tasks:     NewTaskRepository(database),
		Settings:  NewSettingsRepository(database),
		Templates: NewPromptTemplateRepository(database),
	}
}
