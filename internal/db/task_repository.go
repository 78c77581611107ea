package db

import (
	"time"

	"github.com/yhkwon/taskpilot/internal/models"
	"gorm.io/gorm"
)

type TaskRepository struct {
	database *gorm.DB
}

func NewTaskRepository(database *gorm.DB) *TaskRepository {
	return &TaskRepository{database: database}
}

type TaskFilter struct {
	AssigneeID string
	Status     string
}

func (repo *TaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	query := repo.database.Preload("Assignee").Order("updated_at DESC")
	if filter.AssigneeID != "" {
		query = query.Where("assignee_id = ?", filter.AssigneeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	tasks := make([]models.Task, 0)
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (repo *TaskRepository) FindByID(taskID string) (models.Task, error) {
	var task models.Task
	if err := repo.database.
		Preload("Assignee").
		Preload("Template").
		First(&task, "id = ?", taskID).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (repo *TaskRepository) Create(task *models.Task) error {
	return repo.database.Create(task).Error
}

func (repo *TaskRepository) UpdateByID(taskID string, updates map[string]any) error {
	result := repo.database.Model(&models.Task{}).Where("id = ?", taskID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ApplyReport persists a report delta in one multi-field update. Concurrent
// reports against the same task are last-write-wins; the storage layer does
// not serialize them.
func (repo *TaskRepository) ApplyReport(taskID string, updates map[string]any) (models.Task, error) {
	if err := repo.UpdateByID(taskID, updates); err != nil {
		return models.Task{}, err
	}
	return repo.FindByID(taskID)
}

func (repo *TaskRepository) Delete(taskID string) error {
	return repo.database.Delete(&models.Task{}, "id = ?", taskID).Error
}

// MarkOverdue flags open tasks whose due date has passed and returns how many
// rows changed.
func (repo *TaskRepository) MarkOverdue(before time.Time) (int64, error) {
	result := repo.database.Model(&models.Task{}).
		Where("due_date IS NOT NULL AND due_date < ?", before).
		Where("status IN ?", []string{models.StatusPending, models.StatusInProgress}).
		Update("status", models.StatusOverdue)
	return result.RowsAffected, result.Error
}

// CountOpen counts tasks that still need attention, for the digest log.
func (repo *TaskRepository) CountOpen() (int64, error) {
	var count int64
	err := repo.database.Model(&models.Task{}).
		Where("status <> ?", models.StatusCompleted).
		Count(&count).Error
	return count, err
}
