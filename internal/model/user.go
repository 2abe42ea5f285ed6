package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Username  string         `json:"username" gorm:"not null;uniqueIndex"`
	Email     string         `json:"email" gorm:"not null;uniqueIndex"`
	Password  string         `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	Templates []Template     `json:"templates,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
