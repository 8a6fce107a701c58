package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog listing.
type Product struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	PriceCents  int64     `gorm:"column:price_cents;not null"`
	Currency    string    `gorm:"column:currency;not null;default:'inr'"`
	Image       string    `gorm:"column:image;not null;default:''"`
	ImageURL    string    `gorm:"column:image_url;not null;default:''"`
	Category    string    `gorm:"column:category;not null;default:''"`
	Description string    `gorm:"column:description;not null;default:''"`
	Stock       int       `gorm:"column:stock;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
