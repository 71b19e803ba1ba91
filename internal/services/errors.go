// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrCartEmpty        = errors.New("cart is empty")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrOverrideNotFound = errors.New("user has no personal markup")
	ErrInvalidCommand   = errors.New("invalid admin command")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)

// RangeError rejects an admin value outside its allowed bounds.
type RangeError struct {
	Field string
	Value decimal.Decimal
	Min   decimal.Decimal
	Max   decimal.Decimal
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %s and %s, got %s", e.Field, e.Min, e.Max, e.Value)
}
