package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType is the severity shown in the feed.
type NotificationType string

const (
	NotificationInfo    NotificationType = "INFO"
	NotificationSuccess NotificationType = "SUCCESS"
	NotificationAlert   NotificationType = "ALERT"
)

// Notification is an append-only feed entry.
type Notification struct {
	ID        string           `gorm:"primaryKey;size:36" json:"id"`
	Type      NotificationType `gorm:"size:16;not null;default:'INFO'" json:"type"`
	Title     string           `gorm:"size:256;not null" json:"title"`
	Message   string           `gorm:"size:1024;not null" json:"message"`
	IsRead    bool             `gorm:"not null;default:false;index" json:"isRead"`
	CreatedAt time.Time        `gorm:"not null;index" json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Type == "" {
		n.Type = NotificationInfo
	}
	return nil
}
