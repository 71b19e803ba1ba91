// internal/repository/gorm_store_test.go
package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonemarket/backend/internal/config"
	"github.com/phonemarket/backend/internal/database"
	"github.com/phonemarket/backend/internal/models"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := database.Initialize(config.DatabaseConfig{Driver: "sqlite", Path: "file::memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() { database.Close(db) })
	return NewGormStore(db)
}

func TestProductsBySource(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.InsertProducts(ctx, []models.Product{
		{Category: "iPhone 15", Name: "iPhone 15 256GB", Price: 900, Source: models.SourceStandard},
		{Category: "iPhone 15", Name: "iPhone 15 128GB", Price: 800, Source: models.SourceStandard},
		{Category: "AirPods", Name: "AirPods 4", Price: 150, Source: models.SourceStandard},
		{Category: "iPhone 17", Name: "iPhone 17 256GB", Price: 1500, Source: models.SourcePreorder},
	}))

	categories, err := store.ListDistinctCategories(ctx, models.SourceStandard)
	require.NoError(t, err)
	assert.Equal(t, []string{"AirPods", "iPhone 15"}, categories)

	products, err := store.ListProducts(ctx, models.SourceStandard, "iPhone 15")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(800), products[0].Price)
	assert.Equal(t, int64(900), products[1].Price)

	deleted, err := store.DeleteBySource(ctx, models.SourceStandard)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	counts, err := store.CountBySource(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts[models.SourceStandard])
	assert.Equal(t, int64(1), counts[models.SourcePreorder])
	assert.Equal(t, int64(0), counts[models.SourceSimple])
}

func TestInsertEmptyBatch(t *testing.T) {
	assert.NoError(t, newTestStore(t).InsertProducts(context.Background(), nil))
}

func TestTopCategories(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.InsertProducts(ctx, []models.Product{
		{Category: "AirPods", Name: "a", Price: 1, Source: models.SourceStandard},
		{Category: "iPad", Name: "b", Price: 1, Source: models.SourceStandard},
		{Category: "iPad", Name: "c", Price: 1, Source: models.SourceSimple},
		{Category: "Dyson", Name: "d", Price: 1, Source: models.SourceSimple},
	}))

	top, err := store.TopCategories(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, models.CategoryCount{Category: "iPad", Count: 2}, top[0])
	assert.Equal(t, "AirPods", top[1].Category)
}

func TestSettingsUpsert(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, ok, err := store.GetSetting(ctx, models.SettingMarkupAmount)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetSetting(ctx, models.SettingMarkupAmount, "100"))
	require.NoError(t, store.SetSetting(ctx, models.SettingMarkupAmount, "250"))

	value, ok, err := store.GetSetting(ctx, models.SettingMarkupAmount)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "250", value)
}

func TestUserOverrides(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	override, err := store.GetUserOverride(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, override)

	require.NoError(t, store.SetUserOverride(ctx, 42, decimal.NewFromInt(500)))
	require.NoError(t, store.SetUserOverride(ctx, 42, decimal.NewFromInt(-300)))
	require.NoError(t, store.SetUserOverride(ctx, 7, decimal.NewFromInt(10)))

	override, err = store.GetUserOverride(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, override)
	assert.True(t, override.Equal(decimal.NewFromInt(-300)))

	list, err := store.ListUserOverrides(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	removed, err := store.DeleteUserOverride(ctx, 42)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.DeleteUserOverride(ctx, 42)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestTransactionRollback(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.InsertProducts(ctx, []models.Product{
		{Category: "iPad", Name: "iPad Air", Price: 600, Source: models.SourceStandard},
	}))

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx Store) error {
		if _, err := tx.DeleteBySource(ctx, models.SourceStandard); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	products, err := store.ListProducts(ctx, models.SourceStandard, "iPad")
	require.NoError(t, err)
	assert.Len(t, products, 1)
}
