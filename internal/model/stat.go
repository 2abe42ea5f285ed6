package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// Difficulty bounds shared by the tracker and the seed insert. Every new
// (template, topic) stat starts at BaseDifficulty with a stable trend.
const (
	BaseDifficulty = 5.0
	MinDifficulty  = 1.0
	MaxDifficulty  = 10.0
)

// Stat tracks the adaptive difficulty of one topic within one template.
// At most one row may exist per (template, topic) pair.
type Stat struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	TemplateID uint           `json:"template_id" gorm:"not null;uniqueIndex:idx_stats_template_topic"`
	Topic      string         `json:"topic" gorm:"not null;uniqueIndex:idx_stats_template_topic"`
	Difficulty float64        `json:"difficulty" gorm:"not null"`
	Trend      string         `json:"trend" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
