package product

import (
	"context"
	"fmt"

	"github.com/freshkart/freshkart-backend/pkg/db/models"
)

type seedRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	CountAll(ctx context.Context) (int64, error)
}

// SeedCatalog loads the starter grocery catalog. It is a no-op when products
// already exist.
func SeedCatalog(ctx context.Context, repo seedRepository) (int, error) {
	count, err := repo.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for i := range seedProducts {
		item := seedProducts[i]
		if _, err := repo.Create(ctx, &item); err != nil {
			return i, fmt.Errorf("seed product %q: %w", item.Name, err)
		}
	}
	return len(seedProducts), nil
}

var seedProducts = []models.Product{
	{Name: "Red Apple", PriceCents: 4000, Image: "🍎", Category: "Fruits", Stock: 50, Description: "Fresh red apples"},
	{Name: "Banana Bunch", PriceCents: 3000, Image: "🍌", Category: "Fruits", Stock: 100, Description: "Ripe yellow bananas"},
	{Name: "Orange", PriceCents: 3500, Image: "🍊", Category: "Fruits", Stock: 80, Description: "Juicy oranges"},
	{Name: "Tomatoes", PriceCents: 4900, Image: "🍅", Category: "Vegetables", Stock: 70, Description: "Fresh tomatoes"},
	{Name: "Spinach Pack", PriceCents: 2000, Image: "🥬", Category: "Vegetables", Stock: 70, Description: "Fresh organic spinach"},
	{Name: "Carrot kg", PriceCents: 3500, Image: "🥕", Category: "Vegetables", Stock: 80, Description: "Fresh carrots per kg"},
	{Name: "Milk 1L", PriceCents: 6500, Image: "🥛", Category: "Dairy", Stock: 200, Description: "Fresh full-cream milk"},
	{Name: "Paneer 200g", PriceCents: 12000, Image: "🧀", Category: "Dairy", Stock: 40, Description: "Fresh cottage cheese"},
	{Name: "USB Cable", PriceCents: 29900, Image: "📱", Category: "Electronics", Stock: 50, Description: "Type-C USB cable"},
	{Name: "Earphones", PriceCents: 49900, Image: "🎧", Category: "Electronics", Stock: 30, Description: "Wired earphones"},
	{Name: "T-Shirt", PriceCents: 39900, Image: "👕", Category: "Clothes", Stock: 100, Description: "Cotton T-shirt"},
	{Name: "Jeans", PriceCents: 99900, Image: "👖", Category: "Clothes", Stock: 50, Description: "Denim jeans"},
	{Name: "Chips Pack", PriceCents: 2000, Image: "🍿", Category: "Snacks", Stock: 200, Description: "Potato chips"},
	{Name: "Cookies", PriceCents: 5000, Image: "🍪", Category: "Snacks", Stock: 150, Description: "Chocolate cookies"},
}
