package models

import (
	"time"

	"github.com/google/uuid"
)

// Response stores the question text as asked, decoupled from the Question row,
// so the record stays accurate if the question is later edited.
type Response struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InterviewID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"interview_id"`
	QuestionID        *uuid.UUID `gorm:"type:uuid" json:"question_id,omitempty"`
	QuestionText      string     `gorm:"type:text;not null" json:"question_text"`
	TranscribedText   string     `gorm:"type:text;not null" json:"transcribed_text"`
	SummaryPoints     string     `gorm:"type:jsonb" json:"-"`
	StarAnalysis      string     `gorm:"type:jsonb" json:"-"`
	FollowUpQuestions string     `gorm:"type:jsonb" json:"-"`
	SentimentScore    *float64   `json:"sentiment_score,omitempty"`
	ConfidenceScore   *float64   `json:"confidence_score,omitempty"`
	EvaluationScore   *float64   `json:"evaluation_score,omitempty"`
	CreatedAt         time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Response) TableName() string {
	return "responses"
}
