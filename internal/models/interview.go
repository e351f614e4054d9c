package models

import (
	"time"

	"github.com/google/uuid"
)

type InterviewStatus string

const (
	StatusPreparation InterviewStatus = "preparation"
	StatusActive      InterviewStatus = "active"
	StatusCompleted   InterviewStatus = "completed"
)

type Interview struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InterviewerName  string          `gorm:"type:text;not null" json:"interviewer_name"`
	InterviewerEmail string          `gorm:"type:text;not null" json:"interviewer_email"`
	CandidateName    string          `gorm:"type:text;not null" json:"candidate_name"`
	CandidateEmail   *string         `gorm:"type:text" json:"candidate_email,omitempty"`
	PositionTitle    string          `gorm:"type:text;not null" json:"position_title"`
	Status           InterviewStatus `gorm:"not null;default:'preparation'" json:"status"`
	CreatedAt        time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	StartedAt        *time.Time      `gorm:"type:timestamp" json:"started_at,omitempty"`
	CompletedAt      *time.Time      `gorm:"type:timestamp" json:"completed_at,omitempty"`

	// Relations, cascade-deleted with the interview
	Documents []Document `gorm:"foreignKey:InterviewID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
	Questions []Question `gorm:"foreignKey:InterviewID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Responses []Response `gorm:"foreignKey:InterviewID;constraint:OnDelete:CASCADE" json:"responses,omitempty"`
}

func (Interview) TableName() string {
	return "interviews"
}
