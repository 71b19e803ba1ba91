// internal/services/navigation_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonemarket/backend/internal/markup"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/repository"
	"github.com/phonemarket/backend/internal/session"
)

func newNavigation(t *testing.T) (*NavigationService, *CatalogService) {
	t.Helper()
	db := newTestDB(t)
	seedProducts(t, db,
		models.Product{Category: "iPhone 17", Name: "iPhone 17 256GB Black", Price: 900, Source: models.SourceStandard},
		models.Product{Category: "iPhone 17", Name: "iPhone 17 256GB White", Price: 800, Source: models.SourceStandard},
		models.Product{Category: "iPhone 17", Name: "iPhone 17 512GB Black", Price: 1000, Source: models.SourceStandard},
		models.Product{Category: "iPhone 16", Name: "iPhone 16 128GB Pink", Price: 600, Source: models.SourceStandard},
		models.Product{Category: "Accessories", Name: "USB-C cable", Price: 10, Source: models.SourceStandard},
	)
	setMarkup(t, db, models.SettingMarkupAmount, "100")

	catalogSvc := NewCatalogService(repository.NewGormStore(db), markup.NewResolver(repository.NewGormStore(db), markup.NewAmountPolicy()))
	return NewNavigationService(session.NewMemoryStore(time.Hour), catalogSvc), catalogSvc
}

func TestCatalogTreeAndProducts(t *testing.T) {
	_, catalogSvc := newNavigation(t)
	ctx := context.Background()

	tree, err := catalogSvc.Tree(ctx, models.SourceStandard)
	require.NoError(t, err)
	assert.Equal(t, "Accessories", tree.Parents[len(tree.Parents)-1])
	assert.Equal(t, []string{"iPhone 16", "iPhone 17"}, tree.Children["Apple"])

	records, err := catalogSvc.Products(ctx, models.SourceStandard, "iPhone 16", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(700), records[0].EffectivePrice)

	empty, err := catalogSvc.Products(ctx, models.SourcePreorder, "iPhone 16", 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCatalogGroupsByBaseModel(t *testing.T) {
	_, catalogSvc := newNavigation(t)

	groups, err := catalogSvc.Groups(context.Background(), models.SourceStandard, "iPhone 17", 0)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "iPhone 17", groups[0].Model)
	require.Len(t, groups[0].Products, 3)
	assert.Equal(t, int64(900), groups[0].Products[0].EffectivePrice)
	assert.Equal(t, int64(1000), groups[0].Products[1].EffectivePrice)
	assert.Equal(t, int64(1100), groups[0].Products[2].EffectivePrice)
}

func TestCatalogGroupsOrderedByCheapestModel(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db,
		models.Product{Category: "Pixel 10", Name: "Pixel 10 Pro 256GB Black", Price: 500, Source: models.SourceStandard},
		models.Product{Category: "Pixel 10", Name: "Pixel 10 256GB Black", Price: 400, Source: models.SourceStandard},
		models.Product{Category: "Pixel 10", Name: "Pixel 10 Pro 128GB Black", Price: 450, Source: models.SourceStandard},
		models.Product{Category: "Pixel 10", Name: "Pixel 10 128GB Black", Price: 300, Source: models.SourceStandard},
	)
	catalogSvc := NewCatalogService(repository.NewGormStore(db), newTestResolver(db, markup.NewAmountPolicy()))

	groups, err := catalogSvc.Groups(context.Background(), models.SourceStandard, "Pixel 10", 0)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Pixel 10", groups[0].Model)
	assert.Equal(t, "Pixel 10 Pro", groups[1].Model)
	assert.Equal(t, int64(300), groups[0].Products[0].EffectivePrice)
	assert.Equal(t, int64(450), groups[1].Products[0].EffectivePrice)
}

func TestNavigationOpenAndBack(t *testing.T) {
	nav, _ := newNavigation(t)
	ctx := context.Background()
	const user int64 = 5

	view, err := nav.Current(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, session.ScreenMain, view.State.Screen)

	view, err = nav.Open(ctx, user, &OpenRequest{Source: models.SourceStandard})
	require.NoError(t, err)
	assert.Equal(t, session.ScreenParents, view.State.Screen)
	assert.Equal(t, []string{"Apple", "Accessories"}, view.Parents)

	view, err = nav.Open(ctx, user, &OpenRequest{Parent: "Apple"})
	require.NoError(t, err)
	assert.Equal(t, session.ScreenCategories, view.State.Screen)
	assert.Equal(t, []string{"iPhone 16", "iPhone 17"}, view.Categories)

	view, err = nav.Open(ctx, user, &OpenRequest{Category: "iPhone 16"})
	require.NoError(t, err)
	assert.Equal(t, session.ScreenProducts, view.State.Screen)
	require.Len(t, view.Groups, 1)

	view, moved, err := nav.Back(ctx, user)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, session.ScreenCategories, view.State.Screen)
	assert.Equal(t, "Apple", view.State.Parent)

	_, err = nav.Open(ctx, user, &OpenRequest{Parent: "Nokia"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	require.NoError(t, nav.Reset(ctx, user))
	_, moved, err = nav.Back(ctx, user)
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestClassify(t *testing.T) {
	_, catalogSvc := newNavigation(t)

	result := catalogSvc.Classify("iPhone 17 Pro 512Gb Silver 🇺🇸")
	assert.Equal(t, "iPhone 17 Pro", result.Category)
	assert.Equal(t, "Apple", result.Parent)
	assert.Equal(t, "512 Gb", result.Memory)
	assert.Equal(t, "Silver", result.Color)
}
