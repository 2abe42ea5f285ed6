package model

import (
	"time"

	"gorm.io/gorm"
)

type Exam struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	TemplateID uint           `json:"template_id" gorm:"not null;index"`
	Questions  []Question     `json:"questions,omitempty" gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
