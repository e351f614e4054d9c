package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-copilot/internal/models"
)

type DocumentRepository interface {
	Upsert(document *models.Document) error
	FindByInterviewAndType(interviewID uuid.UUID, docType models.DocumentType) (*models.Document, error)
	FindByInterview(interviewID uuid.UUID) ([]models.Document, error)
	SaveAnalysis(id uuid.UUID, analysisJSON string) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Upsert implements DocumentRepository. At most one document per
// (interview, document_type): a second upload of the same type overwrites the
// existing row in place and clears any stale analysis.
func (r *documentRepository) Upsert(document *models.Document) error {
	var existing models.Document
	err := r.db.
		Where("interview_id = ? AND document_type = ?", document.InterviewID, document.DocumentType).
		First(&existing).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up document: %w", err)
		}
		if err := r.db.Create(document).Error; err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}
		return nil
	}

	result := r.db.Model(&existing).Updates(map[string]interface{}{
		"filename":        document.Filename,
		"file_path":       document.FilePath,
		"extracted_text":  document.ExtractedText,
		"analysis_result": nil,
		"uploaded_at":     document.UploadedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update document: %w", result.Error)
	}

	document.ID = existing.ID
	return nil
}

// FindByInterviewAndType implements DocumentRepository.
func (r *documentRepository) FindByInterviewAndType(interviewID uuid.UUID, docType models.DocumentType) (*models.Document, error) {
	var doc models.Document
	err := r.db.
		Where("interview_id = ? AND document_type = ?", interviewID, docType).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s document: %w", docType, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return &doc, nil
}

// FindByInterview implements DocumentRepository.
func (r *documentRepository) FindByInterview(interviewID uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	if err := r.db.Where("interview_id = ?", interviewID).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// SaveAnalysis implements DocumentRepository.
func (r *documentRepository) SaveAnalysis(id uuid.UUID, analysisJSON string) error {
	result := r.db.Model(&models.Document{}).
		Where("id = ?", id).
		Update("analysis_result", analysisJSON)
	if result.Error != nil {
		return fmt.Errorf("failed to save analysis: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return nil
}
