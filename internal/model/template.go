package model

import (
	"time"

	"gorm.io/gorm"
)

// Template is a saved set of topics belonging to a user, the seed for
// generating exams. Topics is a free-form comma-separated string.
type Template struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Subject   string         `json:"subject,omitempty"`
	Topics    string         `json:"topics" gorm:"not null"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Stats     []Stat         `json:"stats,omitempty" gorm:"foreignKey:TemplateID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Exams     []Exam         `json:"exams,omitempty" gorm:"foreignKey:TemplateID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
