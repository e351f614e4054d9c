package models

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InterviewID uuid.UUID `gorm:"type:uuid;not null;index" json:"interview_id"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	Category    string    `gorm:"type:text" json:"category"`
	Rationale   string    `gorm:"type:text" json:"rationale"`
	IsGenerated bool      `gorm:"not null;default:false" json:"is_generated"`
	IsAsked     bool      `gorm:"not null;default:false" json:"is_asked"`
	OrderIndex  int       `gorm:"not null;default:0" json:"order_index"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Question) TableName() string {
	return "questions"
}
