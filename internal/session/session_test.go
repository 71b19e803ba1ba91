// internal/session/session_test.go
package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonemarket/backend/internal/models"
)

func TestStateBack(t *testing.T) {
	s := New(1)
	s.Screen = ScreenProducts
	s.Parent = "Apple"
	s.Category = "iPhone 16"

	require.True(t, s.Back())
	assert.Equal(t, ScreenCategories, s.Screen)
	assert.Equal(t, "Apple", s.Parent)
	assert.Empty(t, s.Category)

	require.True(t, s.Back())
	assert.Equal(t, ScreenParents, s.Screen)
	assert.Empty(t, s.Parent)

	require.True(t, s.Back())
	assert.Equal(t, ScreenMain, s.Screen)
	assert.False(t, s.Back())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	_, ok, err := store.Get(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	state := New(5)
	state.Source = models.SourcePreorder
	state.Pending = &PendingAction{Kind: "set_markup"}
	require.NoError(t, store.Save(ctx, state))

	got, ok, err := store.Get(ctx, 5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.SourcePreorder, got.Source)
	assert.Equal(t, "set_markup", got.Pending.Kind)
	assert.False(t, got.UpdatedAt.IsZero())

	require.NoError(t, store.Delete(ctx, 5))
	_, ok, _ = store.Get(ctx, 5)
	assert.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, New(1)))
	require.NoError(t, store.Save(ctx, New(2)))

	now = now.Add(2 * time.Minute)
	_, ok, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 1, store.Sweep())
}

func TestMemoryStoreExpiryKeepsConcurrentSave(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, New(1)))
	now = now.Add(2 * time.Minute)

	// Another request saves a fresh state between the expired read and the delete.
	saved := false
	store.now = func() time.Time {
		if !saved {
			saved = true
			fresh := New(1)
			fresh.Parent = "Apple"
			require.NoError(t, store.Save(ctx, fresh))
		}
		return now
	}

	_, ok, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	require.True(t, saved)

	state, ok, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Apple", state.Parent)
}
