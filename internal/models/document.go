package models

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentResume     DocumentType = "resume"
	DocumentJobListing DocumentType = "job_listing"
	DocumentQuestions  DocumentType = "questions"
)

// ValidDocumentType reports whether t is one of the accepted document types.
func ValidDocumentType(t string) bool {
	switch DocumentType(t) {
	case DocumentResume, DocumentJobListing, DocumentQuestions:
		return true
	}
	return false
}

// Document holds one uploaded file per (interview, document_type); a later
// upload of the same type overwrites the earlier row.
type Document struct {
	ID             uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InterviewID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"interview_id"`
	DocumentType   DocumentType `gorm:"type:text;not null" json:"document_type"`
	Filename       string       `gorm:"type:text;not null" json:"filename"`
	FilePath       string       `gorm:"type:text;not null" json:"file_path"`
	ExtractedText  string       `gorm:"type:text" json:"extracted_text"`
	AnalysisResult *string      `gorm:"type:jsonb" json:"analysis_result,omitempty"`
	UploadedAt     time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"uploaded_at"`
}

func (Document) TableName() string {
	return "documents"
}
