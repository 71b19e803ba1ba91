// internal/models/pricing.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Setting keys
const (
	SettingMarkupAmount         = "markup_amount"
	SettingPreorderMarkupAmount = "preorder_markup_amount"
)

type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey;size:100"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserMarkup is a personal markup that replaces the global one for a single user.
type UserMarkup struct {
	ID           uint            `json:"-" gorm:"primaryKey"`
	UserID       int64           `json:"user_id" gorm:"uniqueIndex;not null"`
	MarkupAmount decimal.Decimal `json:"markup_amount" gorm:"type:decimal(12,2);not null"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
