package models

import (
	"time"
)

// OrderStatus is the closed set of states an order can be in
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a member of the allowed status set.
// Transitions are deliberately unrestricted between members; validation
// is membership only.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents a customer purchase. Customer contact fields are
// denormalized so guest orders survive without a user row, and so
// registered-user orders keep the contact data they were placed with.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          *uint       `gorm:"index" json:"user_id"` // nullable for guest orders
	User            *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CustomerName    string      `gorm:"not null" json:"customer_name"`
	CustomerEmail   string      `gorm:"not null" json:"customer_email"`
	CustomerPhone   string      `gorm:"not null" json:"customer_phone"`
	ShippingAddress string      `gorm:"type:text" json:"shipping_address"`
	TotalAmount     float64     `gorm:"not null" json:"total_amount"` // frozen at creation, never re-priced
	Status          OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentMethod   string      `gorm:"default:'cash_on_delivery'" json:"payment_method"`
	PaymentStatus   string      `gorm:"default:'pending'" json:"payment_status"`
	Notes           string      `gorm:"type:text" json:"notes"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line entry within an order. ProductName and UnitPrice are
// copies frozen at purchase time, not live joins to the product row.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"not null;index" json:"order_id"`
	ProductID   uint    `gorm:"not null;index" json:"product_id"`
	ProductName string  `gorm:"not null" json:"product_name"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	Quantity    int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	Subtotal    float64 `gorm:"not null" json:"subtotal"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
