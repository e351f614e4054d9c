package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-copilot/internal/models"
)

type ResponseRepository interface {
	Create(response *models.Response) error
	FindByInterview(interviewID uuid.UUID) ([]models.Response, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

// Create implements ResponseRepository. Responses are append-only.
func (r *responseRepository) Create(response *models.Response) error {
	if err := r.db.Create(response).Error; err != nil {
		return fmt.Errorf("failed to create response: %w", err)
	}
	return nil
}

// FindByInterview implements ResponseRepository.
func (r *responseRepository) FindByInterview(interviewID uuid.UUID) ([]models.Response, error) {
	var responses []models.Response
	err := r.db.
		Where("interview_id = ?", interviewID).
		Order("created_at ASC").
		Find(&responses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, nil
}
