// internal/markup/resolver_test.go
package markup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonemarket/backend/internal/config"
	"github.com/phonemarket/backend/internal/database"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/repository"
)

type fakeSettings struct {
	settings  map[string]string
	overrides map[int64]decimal.Decimal
	err       error
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{settings: map[string]string{}, overrides: map[int64]decimal.Decimal{}}
}

func (f *fakeSettings) GetSetting(_ context.Context, key string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.settings[key]
	return v, ok, nil
}

func (f *fakeSettings) SetSetting(_ context.Context, key, value string) error {
	f.settings[key] = value
	return nil
}

func (f *fakeSettings) GetUserOverride(_ context.Context, userID int64) (*decimal.Decimal, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.overrides[userID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (f *fakeSettings) SetUserOverride(_ context.Context, userID int64, amount decimal.Decimal) error {
	f.overrides[userID] = amount
	return nil
}

func (f *fakeSettings) DeleteUserOverride(_ context.Context, userID int64) (bool, error) {
	_, ok := f.overrides[userID]
	delete(f.overrides, userID)
	return ok, nil
}

func (f *fakeSettings) ListUserOverrides(context.Context) ([]repository.UserOverride, error) {
	return nil, nil
}

func TestResolverPrice(t *testing.T) {
	ctx := context.Background()
	settings := newFakeSettings()
	settings.settings[models.SettingMarkupAmount] = "100"
	settings.settings[models.SettingPreorderMarkupAmount] = "950"
	settings.overrides[42] = decimal.NewFromInt(50)

	r := NewResolver(settings, NewAmountPolicy())

	assert.Equal(t, int64(1100), r.Price(ctx, 1000, 0, false))
	assert.Equal(t, int64(1100), r.Price(ctx, 1000, 7, false))
	assert.Equal(t, int64(950), r.Price(ctx, 1000, 42, false))
	assert.Equal(t, int64(1950), r.Price(ctx, 1000, 0, true))
	assert.Equal(t, int64(1050), r.Price(ctx, 1000, 42, true))
}

func TestResolverMissingAndMalformedSettings(t *testing.T) {
	ctx := context.Background()
	settings := newFakeSettings()
	r := NewResolver(settings, NewAmountPolicy())

	assert.Equal(t, int64(1000), r.Price(ctx, 1000, 1, false))

	settings.settings[models.SettingMarkupAmount] = "lots"
	assert.Equal(t, int64(1000), r.Price(ctx, 1000, 1, false))
}

func TestResolverNeverFails(t *testing.T) {
	settings := newFakeSettings()
	settings.err = errors.New("connection refused")
	r := NewResolver(settings, NewAmountPolicy())

	assert.Equal(t, int64(1000), r.Price(context.Background(), 1000, 42, false))
}

func TestResolverPercentPolicy(t *testing.T) {
	ctx := context.Background()
	settings := newFakeSettings()
	settings.settings[models.SettingMarkupAmount] = "100"
	settings.overrides[42] = decimal.NewFromInt(10)

	r := NewResolver(settings, PercentPolicy{})

	assert.Equal(t, int64(1000), r.Price(ctx, 1000, 0, false))
	assert.Equal(t, int64(1100), r.Price(ctx, 1000, 42, false))
}

func TestResolverQuote(t *testing.T) {
	settings := newFakeSettings()
	settings.settings[models.SettingMarkupAmount] = "250.5"
	settings.overrides[9] = decimal.NewFromInt(-100)

	q, err := NewResolver(settings, NewAmountPolicy()).Quote(context.Background(), 9, false)
	require.NoError(t, err)
	assert.True(t, q.StandardMarkup.Equal(decimal.RequireFromString("250.5")))
	require.True(t, q.HasOverride())
	assert.True(t, q.Override.Equal(decimal.NewFromInt(-100)))
}

func newTestStore(t *testing.T) *repository.GormStore {
	t.Helper()
	db, err := database.Initialize(config.DatabaseConfig{Driver: "sqlite", Path: "file::memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() { database.Close(db) })
	return repository.NewGormStore(db)
}

func TestRebaseline(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SetSetting(ctx, models.SettingMarkupAmount, "100"))

	old := time.Now().Add(-48 * time.Hour)
	products := []models.Product{
		{Category: "iPhone 15", Name: "iPhone 15 128GB Black", Price: 1100, Source: models.SourceStandard, CreatedAt: old},
		{Category: "Accessories", Name: "Cable", Price: 105, Source: models.SourceStandard, CreatedAt: old},
		{Category: "iPhone 16", Name: "iPhone 16 128GB Black", Price: 2000, Source: models.SourceStandard},
	}
	require.NoError(t, store.InsertProducts(ctx, products))

	cutoff := time.Now().Add(-time.Hour)

	report, err := Rebaseline(ctx, store, NewAmountPolicy(), models.SourceStandard, cutoff, true)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	require.Len(t, report.Changes, 1)
	assert.Equal(t, int64(1000), report.Changes[0].NewPrice)

	listed, err := store.ListProducts(ctx, models.SourceStandard, "iPhone 15")
	require.NoError(t, err)
	assert.Equal(t, int64(1100), listed[0].Price, "dry run leaves prices alone")

	_, err = Rebaseline(ctx, store, NewAmountPolicy(), models.SourceStandard, cutoff, false)
	require.NoError(t, err)

	listed, err = store.ListProducts(ctx, models.SourceStandard, "iPhone 15")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), listed[0].Price)

	listed, err = store.ListProducts(ctx, models.SourceStandard, "iPhone 16")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), listed[0].Price)
}

func TestRebaselineRequiresAmountPolicy(t *testing.T) {
	_, err := Rebaseline(context.Background(), newTestStore(t), PercentPolicy{}, models.SourceStandard, time.Now(), true)
	assert.ErrorIs(t, err, ErrRebaselineUnsupported)
}
