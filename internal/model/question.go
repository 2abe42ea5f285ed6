package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionTypeOpen   = "open"
	QuestionTypeClosed = "closed"
)

// Question is one exam item. Answer and Solution are confidential: they are
// excluded from JSON so no listing can leak them, and only the grading and
// clarification flows reveal them explicitly.
type Question struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ExamID    uint           `json:"exam_id" gorm:"not null;index"`
	Type      string         `json:"type" gorm:"not null"` // "open" or "closed"
	Topic     string         `json:"topic" gorm:"not null"`
	Points    int            `json:"points"`
	Options   string         `json:"-" gorm:"type:text"` // JSON-encoded []string for closed questions
	Answer    string         `json:"-" gorm:"type:text;not null"`
	Solution  string         `json:"-" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
