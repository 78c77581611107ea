package db

import (
	"github.com/yhkwon/taskpilot/internal/models"
	"gorm.io/gorm"
)

type PromptTemplateRepository struct {
	database *gorm.DB
}

func NewPromptTemplateRepository(database *gorm.DB) *PromptTemplateRepository {
	return &PromptTemplateRepository{database: database}
}

func (repo *PromptTemplateRepository) List() ([]models.PromptTemplate, error) {
	templates := make([]models.PromptTemplate, 0)
	if err := repo.database.Order("created_at DESC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (repo *PromptTemplateRepository) FindByID(templateID string) (models.PromptTemplate, error) {
	var template models.PromptTemplate
	if err := repo.database.First(&template, "id = ?", templateID).Error; err != nil {
		return models.PromptTemplate{}, err
	}
	return template, nil
}

func (repo *PromptTemplateRepository) Create(template *models.PromptTemplate) error {
	return repo.database.Create(template).Error
}

func (repo *PromptTemplateRepository) UpdateByID(templateID string, updates map[string]any) error {
	result := repo.database.Model(&models.PromptTemplate{}).Where("id = ?", templateID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repo *PromptTemplateRepository) Delete(templateID string) error {
	return repo.database.Delete(&models.PromptTemplate{}, "id = ?", templateID).Error
}
