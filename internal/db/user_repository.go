package db

import (
	"errors"
	"strings"

	"github.com/yhkwon/taskpilot/internal/models"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail = errors.New("email already exists")
	ErrDuplicateName  = errors.New("name already exists")
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) List() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// TaskCounts returns the number of tasks currently assigned to each user.
func (repo *UserRepository) TaskCounts() (map[string]int64, error) {
	type row struct {
		AssigneeID string `gorm:"column:assignee_id"`
		Total      int64  `gorm:"column:total"`
	}
	rows := make([]row, 0)
	if err := repo.database.Model(&models.Task{}).
		Select("assignee_id, COUNT(*) AS total").
		Where("assignee_id IS NOT NULL").
		Group("assignee_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, entry := range rows {
		counts[entry.AssigneeID] = entry.Total
	}
	return counts, nil
}

func (repo *UserRepository) FindByID(userID string) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, "id = ?", userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return classifyUniqueViolation(repo.database.Create(user).Error)
}

func (repo *UserRepository) UpdateByID(userID string, updates map[string]any) error {
	result := repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return classifyUniqueViolation(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repo *UserRepository) Delete(userID string) error {
	return repo.database.Delete(&models.User{}, "id = ?", userID).Error
}

func classifyUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	message := err.Error()
	if strings.Contains(message, "users.email") {
		return ErrDuplicateEmail
	}
	if strings.Contains(message, "users.name") {
		return ErrDuplicateName
	}
	return err
}
