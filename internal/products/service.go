package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/freshkart/freshkart-backend/pkg/db/models"
	pkgerrors "github.com/freshkart/freshkart-backend/pkg/errors"
)

const maxListLimit = 100

// Service exposes catalog operations.
type Service interface {
	List(ctx context.Context, input ListInput) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, input CreateInput) (*ProductDTO, error)
}

// ListInput filters the catalog listing.
type ListInput struct {
	Category string
	Query    string
	Limit    int
}

// CreateInput holds the validated payload to create a product. Price is in
// major units; conversion to cents happens here.
type CreateInput struct {
	Name        string
	Price       decimal.Decimal
	Currency    string
	Image       string
	ImageURL    string
	Category    string
	Description string
	Stock       int
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, category, query string, limit int) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
}

type service struct {
	repo repository
}

// NewService constructs a catalog service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, input ListInput) ([]ProductDTO, error) {
	limit := input.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	items, err := s.repo.List(ctx, input.Category, input.Query, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return FromModels(items), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return FromModel(item), nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	currency := strings.ToLower(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "inr"
	}

	model := &models.Product{
		Name:        name,
		PriceCents:  input.Price.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
		Currency:    currency,
		Image:       strings.TrimSpace(input.Image),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Category:    strings.TrimSpace(input.Category),
		Description: strings.TrimSpace(input.Description),
		Stock:       input.Stock,
	}

	created, err := s.repo.Create(ctx, model)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return FromModel(created), nil
}
