package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-copilot/internal/models"
)

type QuestionRepository interface {
	CreateBatch(questions []models.Question) error
	FindByInterview(interviewID uuid.UUID) ([]models.Question, error)
	FindByID(interviewID, questionID uuid.UUID) (*models.Question, error)
	MarkAsked(interviewID, questionID uuid.UUID) error
	MaxOrderIndex(interviewID uuid.UUID) (int, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// CreateBatch implements QuestionRepository.
func (r *questionRepository) CreateBatch(questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	if err := r.db.Create(&questions).Error; err != nil {
		return fmt.Errorf("failed to create questions: %w", err)
	}
	return nil
}

// FindByInterview implements QuestionRepository.
func (r *questionRepository) FindByInterview(interviewID uuid.UUID) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.
		Where("interview_id = ?", interviewID).
		Order("order_index ASC, created_at ASC").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// FindByID implements QuestionRepository. The interview id scopes the lookup
// so a question from another interview reads as not found.
func (r *questionRepository) FindByID(interviewID, questionID uuid.UUID) (*models.Question, error) {
	var question models.Question
	err := r.db.
		Where("id = ? AND interview_id = ?", questionID, interviewID).
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question %s: %w", questionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}
	return &question, nil
}

// MarkAsked implements QuestionRepository.
func (r *questionRepository) MarkAsked(interviewID, questionID uuid.UUID) error {
	result := r.db.Model(&models.Question{}).
		Where("id = ? AND interview_id = ?", questionID, interviewID).
		Update("is_asked", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark question asked: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("question %s: %w", questionID, ErrNotFound)
	}
	return nil
}

// MaxOrderIndex implements QuestionRepository. Returns -1 when the interview
// has no questions yet.
func (r *questionRepository) MaxOrderIndex(interviewID uuid.UUID) (int, error) {
	var max *int
	err := r.db.Model(&models.Question{}).
		Where("interview_id = ?", interviewID).
		Select("MAX(order_index)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read max order index: %w", err)
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}
