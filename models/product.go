package models

import (
	"time"
)

// Product represents a catalog entry in the wholesale/retail storefront
type Product struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	Price          float64   `gorm:"not null;check:price >= 0" json:"price"`
	WholesalePrice *float64  `json:"wholesale_price,omitempty"` // nullable, bulk-buyer price
	Unit           string    `gorm:"default:'unit'" json:"unit"` // e.g. "kg", "crate", "case"
	CategoryID     *uint     `gorm:"index" json:"category_id"`
	Category       *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ImageKey       *string   `json:"image_key,omitempty"`          // storage key for the product image
	ImageURL       *string   `gorm:"-" json:"image_url,omitempty"` // computed field, resolved per storage backend
	Stock          int       `gorm:"not null;default:0" json:"stock"`
	InStock        bool      `gorm:"not null" json:"in_stock"`
	Featured       bool      `gorm:"not null;default:false" json:"featured"`
	Active         bool      `gorm:"not null" json:"active"` // soft-delete alternative for products locked by order history
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
