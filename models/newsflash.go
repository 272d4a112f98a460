package models

import (
	"time"
)

// NewsFlash is an entry in the storefront's news/media feed
type NewsFlash struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Body         string    `gorm:"type:text" json:"body"`
	ImageKey     *string   `json:"image_key,omitempty"`
	ImageURL     *string   `gorm:"-" json:"image_url,omitempty"` // computed field
	Active       bool      `gorm:"not null" json:"active"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the NewsFlash model
func (NewsFlash) TableName() string {
	return "news_flashes"
}
