// internal/services/notification_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonemarket/backend/internal/config"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/utils"
)

func TestOrderNotifiesAdmins(t *testing.T) {
	db, carts, orders, products := setupShop(t)
	ctx := context.Background()

	notifier := NewNotificationService(db, &config.Config{Admin: config.AdminConfig{IDs: []int64{1, 2}}})
	orders.SetNotifier(notifier)

	_, err := carts.AddItem(ctx, buyer, &AddCartItemRequest{ProductID: products[0].ID, Quantity: 2})
	require.NoError(t, err)
	order, err := orders.CreateOrder(ctx, buyer, &CreateOrderRequest{Username: "jane", FirstName: "<Jane>"})
	require.NoError(t, err)

	for _, adminID := range []int64{1, 2} {
		list, total, err := notifier.List(ctx, adminID, true, utils.PaginationParams{})
		require.NoError(t, err)
		require.Equal(t, int64(1), total)
		n := list[0]
		assert.Equal(t, NotificationTypeOrder, n.Type)
		require.NotNil(t, n.OrderID)
		assert.Equal(t, order.ID, *n.OrderID)
		assert.Contains(t, n.Message, "@jane")
		assert.Contains(t, n.Message, "&lt;Jane&gt;")
		assert.Contains(t, n.Message, "iPhone 17 256GB Black, 🇺🇸 US")
		assert.Contains(t, n.Message, "2 × 1100 = 2200")
		assert.Contains(t, n.Message, "Last name: not specified")
	}
}

func TestNotificationMarkRead(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	notifier := NewNotificationService(db, &config.Config{Admin: config.AdminConfig{IDs: []int64{7}}})

	order := &models.Order{ID: 15, UserID: buyer, TotalPrice: 100}
	require.NoError(t, notifier.OrderCreated(ctx, order))

	list, _, err := notifier.List(ctx, 7, false, utils.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "New order #15", list[0].Title)

	assert.ErrorIs(t, notifier.MarkRead(ctx, 8, list[0].ID), ErrNotificationNotFound)
	require.NoError(t, notifier.MarkRead(ctx, 7, list[0].ID))

	unread, total, err := notifier.List(ctx, 7, true, utils.PaginationParams{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, unread)
}

func TestNotifyWithoutAdmins(t *testing.T) {
	db := newTestDB(t)
	notifier := NewNotificationService(db, &config.Config{})

	require.NoError(t, notifier.OrderCreated(context.Background(), &models.Order{ID: 1}))

	var count int64
	require.NoError(t, db.Model(&models.AdminNotification{}).Count(&count).Error)
	assert.Zero(t, count)
}
