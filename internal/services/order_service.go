// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/phonemarket/backend/internal/markup"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/repository"
	"github.com/phonemarket/backend/internal/utils"
)

const (
	PreorderPrefix      = "[PREORDER]"
	CountryNotSpecified = "🌍 Not specified"
)

type OrderService struct {
	db       *gorm.DB
	resolver *markup.Resolver
	notifier OrderNotifier
}

// OrderNotifier is told about every committed order.
type OrderNotifier interface {
	OrderCreated(ctx context.Context, order *models.Order) error
}

type CreateOrderRequest struct {
	Username  string `json:"username,omitempty" validate:"max=255"`
	FirstName string `json:"first_name,omitempty" validate:"max=255"`
	LastName  string `json:"last_name,omitempty" validate:"max=255"`
}

func NewOrderService(db *gorm.DB, resolver *markup.Resolver) *OrderService {
	return &OrderService{db: db, resolver: resolver}
}

func (s *OrderService) SetNotifier(notifier OrderNotifier) {
	s.notifier = notifier
}

// CreateOrder turns the user's cart, standard and preorder, into one order and removes
// the ordered lines, unavailable ones included. Everything happens in a single transaction.
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := loadCart(tx, userID)
		if err != nil {
			return err
		}

		view := priceCart(ctx, s.resolver.WithStore(repository.NewGormStore(tx)), userID, items)
		if len(view.Items) == 0 {
			return ErrCartEmpty
		}

		order = &models.Order{
			UserID:     userID,
			Username:   req.Username,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Status:     models.OrderStatusNew,
			TotalPrice: view.Total,
		}
		for _, line := range view.Items {
			order.Items = append(order.Items, models.OrderItem{
				ProductID:   line.ProductID,
				ProductName: OrderItemName(line.Name, line.Country, line.Source.IsPreorder()),
				Quantity:    line.Quantity,
				Price:       line.UnitPrice,
			})
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		// Only the lines read above; anything added meanwhile stays in the cart.
		ids := make([]uint, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ID)
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"items":    len(order.Items),
		"total":    order.TotalPrice,
	}).Info("Order created")

	if s.notifier != nil {
		if err := s.notifier.OrderCreated(ctx, order); err != nil {
			logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to notify admins")
		}
	}
	return order, nil
}

// OrderItemName renders the stored line name, e.g. "[PREORDER] iPhone 17 256GB, 🇺🇸 US".
func OrderItemName(name, country string, preorder bool) string {
	country = strings.TrimSpace(country)
	if country == "" {
		country = CountryNotSpecified
	}
	label := name + ", " + country
	if preorder {
		label = PreorderPrefix + " " + label
	}
	return label
}

func (s *OrderService) GetOrder(ctx context.Context, userID int64, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID int64, params utils.PaginationParams) ([]models.Order, int64, error) {
	params = utils.NormalizePagination(params)
	query := s.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "total_price", "id"})
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}
	return orders, total, nil
}
