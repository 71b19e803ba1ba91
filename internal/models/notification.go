// internal/models/notification.go
package models

import (
	"time"
)

type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// AdminNotification is one message queued for one administrator.
type AdminNotification struct {
	ID        uint               `json:"id" gorm:"primaryKey"`
	AdminID   int64              `json:"admin_id" gorm:"not null;index"`
	Type      string             `json:"type" gorm:"type:varchar(50);not null;index"`
	Title     string             `json:"title" gorm:"size:255;not null"`
	Message   string             `json:"message" gorm:"type:text;not null"`
	OrderID   *uint              `json:"order_id,omitempty" gorm:"index"`
	Status    NotificationStatus `json:"status" gorm:"type:varchar(20);not null;default:'unread';index"`
	ReadAt    *time.Time         `json:"read_at,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}
