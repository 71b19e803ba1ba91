// internal/repository/store.go
package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phonemarket/backend/internal/models"
)

// UserOverride is a per-user markup as listed for administrators.
type UserOverride struct {
	UserID    int64           `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductStore is the catalog side of storage.
type ProductStore interface {
	InsertProducts(ctx context.Context, products []models.Product) error
	DeleteBySource(ctx context.Context, source models.Source) (int64, error)
	ListDistinctCategories(ctx context.Context, source models.Source) ([]string, error)
	ListProducts(ctx context.Context, source models.Source, category string) ([]models.Product, error)
	ListProductsBefore(ctx context.Context, source models.Source, before time.Time) ([]models.Product, error)
	UpdateProductPrice(ctx context.Context, id uint, price int64) error
}

// SettingsStore holds global settings and per-user markup overrides.
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
	GetUserOverride(ctx context.Context, userID int64) (*decimal.Decimal, error)
	SetUserOverride(ctx context.Context, userID int64, amount decimal.Decimal) error
	DeleteUserOverride(ctx context.Context, userID int64) (bool, error)
	ListUserOverrides(ctx context.Context) ([]UserOverride, error)
}

// Store is everything the catalog core needs from persistence.
type Store interface {
	ProductStore
	SettingsStore

	// Transaction runs fn against a store bound to a single transaction.
	Transaction(ctx context.Context, fn func(Store) error) error
}
