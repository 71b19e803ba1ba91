// internal/models/order.go
package models

import (
	"time"
)

type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_product,priority:1"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_user_product,priority:2"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Product Product `json:"product" gorm:"foreignKey:ProductID"`
}

type Order struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	UserID     int64       `json:"user_id" gorm:"not null;index"`
	Username   string      `json:"username,omitempty" gorm:"size:255"`
	FirstName  string      `json:"first_name,omitempty" gorm:"size:255"`
	LastName   string      `json:"last_name,omitempty" gorm:"size:255"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'new';index"`
	TotalPrice int64       `json:"total_price" gorm:"not null"`
	CreatedAt  time.Time   `json:"created_at"`

	// Relationships
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	OrderID     uint   `json:"order_id" gorm:"not null;index"`
	ProductID   uint   `json:"product_id" gorm:"not null"`
	ProductName string `json:"product_name" gorm:"size:600;not null"`
	Quantity    int    `json:"quantity" gorm:"not null"`
	Price       int64  `json:"price" gorm:"not null"`
}
