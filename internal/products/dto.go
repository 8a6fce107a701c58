package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshkart/freshkart-backend/pkg/db/models"
)

// ProductDTO is the catalog transport shape. Price is exposed in major units
// with two decimals, the way the storefront renders it.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Currency    string    `json:"currency"`
	Image       string    `json:"image,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromModel converts a persisted product into its transport shape.
func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	price := decimal.NewFromInt(p.PriceCents).Div(decimal.NewFromInt(100))
	return &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Price:       price.StringFixed(2),
		Currency:    p.Currency,
		Image:       p.Image,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Description: p.Description,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
}

// FromModels maps a slice of products.
func FromModels(items []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
