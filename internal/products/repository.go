package product

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshkart/freshkart-backend/pkg/db/models"
)

// Repository exposes catalog persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products filtered by category and name search, newest first.
func (r *Repository) List(ctx context.Context, category, query string, limit int) ([]models.Product, error) {
	tx := r.db.WithContext(ctx).Model(&models.Product{})
	if category = strings.TrimSpace(category); category != "" {
		tx = tx.Where("category = ?", category)
	}
	if query = strings.TrimSpace(query); query != "" {
		tx = tx.Where("lower(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var items []models.Product
	if err := tx.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// CountAll reports the catalog size, used by the seeder to avoid duplicates.
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
