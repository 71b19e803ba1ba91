// internal/models/audit.go
package models

import (
	"time"
)

// AuditLog records one administrative write request.
type AuditLog struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       *int64    `json:"user_id" gorm:"index"`
	Action       string    `json:"action" gorm:"size:100;not null;index"`
	ResourceType string    `json:"resource_type" gorm:"size:50;not null;index"`
	Status       int       `json:"status"`
	NewValues    JSONB     `json:"new_values" gorm:"type:jsonb"`
	IPAddress    string    `json:"ip_address" gorm:"size:45"`
	UserAgent    string    `json:"user_agent" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}
