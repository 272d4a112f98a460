package models

import (
	"time"
)

// WeeklyDeal is a time-boxed promotional price for a product
type WeeklyDeal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	DealPrice float64   `gorm:"not null;check:deal_price >= 0" json:"deal_price"`
	StartsAt  time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt    time.Time `gorm:"not null;index" json:"ends_at"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the WeeklyDeal model
func (WeeklyDeal) TableName() string {
	return "weekly_deals"
}

// CurrentlyActive reports whether the deal is live at the given time
func (d *WeeklyDeal) CurrentlyActive(now time.Time) bool {
	return d.Active && !now.Before(d.StartsAt) && !now.After(d.EndsAt)
}
