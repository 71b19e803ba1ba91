// internal/services/cart_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phonemarket/backend/internal/markup"
	"github.com/phonemarket/backend/internal/models"
)

type CartService struct {
	db       *gorm.DB
	resolver *markup.Resolver
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"omitempty,min=1,max=1000"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"max=1000"`
}

// CartLine is one cart item priced for its owner.
type CartLine struct {
	ItemID    uint          `json:"item_id"`
	ProductID uint          `json:"product_id"`
	Name      string        `json:"name"`
	Country   string        `json:"country,omitempty"`
	Source    models.Source `json:"source"`
	Quantity  int           `json:"quantity"`
	UnitPrice int64         `json:"unit_price"`
	LineTotal int64         `json:"line_total"`
}

// CartView is a priced cart. Preorder lines are totalled separately.
type CartView struct {
	Items         []CartLine `json:"items"`
	StandardTotal int64      `json:"standard_total"`
	PreorderTotal int64      `json:"preorder_total"`
	Total         int64      `json:"total"`
	Unavailable   int        `json:"unavailable,omitempty"`
}

func NewCartService(db *gorm.DB, resolver *markup.Resolver) *CartService {
	return &CartService{db: db, resolver: resolver}
}

// AddItem puts a product in the cart, adding to the quantity if it is already there.
func (s *CartService) AddItem(ctx context.Context, userID int64, req *AddCartItemRequest) (*models.CartItem, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	db := s.db.WithContext(ctx)

	var product models.Product
	if err := db.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// One line per product: a second add increments the existing line.
	item := models.CartItem{UserID: userID, ProductID: req.ProductID, Quantity: quantity}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("cart_items.quantity + excluded.quantity")}),
	}).Create(&item).Error
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	item = models.CartItem{}
	if err := db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&item).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	item.Product = product
	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"product_id": req.ProductID,
		"quantity":   item.Quantity,
	}).Debug("Cart item added")
	return &item, nil
}

// UpdateItem sets the quantity of a product in the cart. Zero or less removes it.
func (s *CartService) UpdateItem(ctx context.Context, userID int64, productID uint, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	result := s.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID int64, productID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID int64) (int64, error) {
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *CartService) GetCart(ctx context.Context, userID int64) (*CartView, error) {
	items, err := loadCart(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	return priceCart(ctx, s.resolver, userID, items), nil
}

func loadCart(db *gorm.DB, userID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	err := db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return items, nil
}

// priceCart prices every line with one quote per partition. Items whose product was
// replaced by a later price list are counted as unavailable.
func priceCart(ctx context.Context, resolver *markup.Resolver, userID int64, items []models.CartItem) *CartView {
	view := &CartView{Items: []CartLine{}}
	quotes := make(map[bool]markup.Quote, 2)

	for _, item := range items {
		if item.Product.ID == 0 {
			view.Unavailable++
			continue
		}

		preorder := item.Product.Source.IsPreorder()
		quote, ok := quotes[preorder]
		if !ok {
			quote = resolver.QuoteOrDefault(ctx, userID, preorder)
			quotes[preorder] = quote
		}

		unit := resolver.Apply(item.Product.Price, quote)
		line := CartLine{
			ItemID:    item.ID,
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Country:   item.Product.Country,
			Source:    item.Product.Source,
			Quantity:  item.Quantity,
			UnitPrice: unit,
			LineTotal: unit * int64(item.Quantity),
		}
		view.Items = append(view.Items, line)

		if preorder {
			view.PreorderTotal += line.LineTotal
		} else {
			view.StandardTotal += line.LineTotal
		}
	}

	view.Total = view.StandardTotal + view.PreorderTotal
	return view
}
