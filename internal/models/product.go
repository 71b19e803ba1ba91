// internal/models/product.go
package models

import (
	"time"
)

// Product is one priced line of an ingested price list. Price is the base price;
// markup is applied when the product is displayed.
type Product struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Category  string    `json:"category" gorm:"size:255;not null;index:idx_products_source_category,priority:2"`
	Name      string    `json:"name" gorm:"size:500;not null"`
	Memory    string    `json:"memory,omitempty" gorm:"size:50"`
	Color     string    `json:"color,omitempty" gorm:"size:100"`
	Country   string    `json:"country,omitempty" gorm:"size:100"`
	Price     int64     `json:"price" gorm:"not null"`
	Source    Source    `json:"source" gorm:"type:varchar(20);not null;default:'standard';index:idx_products_source_category,priority:1"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryCount is a category with the number of products filed under it.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
