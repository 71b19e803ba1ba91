// internal/services/services_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/phonemarket/backend/internal/config"
	"github.com/phonemarket/backend/internal/database"
	"github.com/phonemarket/backend/internal/markup"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Initialize(config.DatabaseConfig{Driver: "sqlite", Path: "file::memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func newTestResolver(db *gorm.DB, policy markup.Policy) *markup.Resolver {
	return markup.NewResolver(repository.NewGormStore(db), policy)
}

func seedProducts(t *testing.T, db *gorm.DB, products ...models.Product) []models.Product {
	t.Helper()
	require.NoError(t, repository.NewGormStore(db).InsertProducts(context.Background(), products))
	return products
}

func setMarkup(t *testing.T, db *gorm.DB, key, value string) {
	t.Helper()
	require.NoError(t, repository.NewGormStore(db).SetSetting(context.Background(), key, value))
}
