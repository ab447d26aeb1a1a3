package models

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index:idx_notifications_owner" json:"user_id"`
	UserType  string         `gorm:"size:20;not null;index:idx_notifications_owner" json:"user_type"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Message   string         `gorm:"type:text" json:"message"`
	Priority  string         `gorm:"size:20;default:'NORMAL'" json:"priority"` // LOW, NORMAL, HIGH
	Link      string         `gorm:"size:500" json:"link,omitempty"`
	IsRead    bool           `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
