package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshkart/freshkart-backend/api/responses"
	"github.com/freshkart/freshkart-backend/api/validators"
	product "github.com/freshkart/freshkart-backend/internal/products"
	"github.com/freshkart/freshkart-backend/pkg/errors"
	"github.com/freshkart/freshkart-backend/pkg/logger"
)

type productService interface {
	List(ctx context.Context, input product.ListInput) ([]product.ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*product.ProductDTO, error)
	Create(ctx context.Context, input product.CreateInput) (*product.ProductDTO, error)
}

type createProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Currency    string          `json:"currency" validate:"omitempty,len=3"`
	Image       string          `json:"image" validate:"omitempty,max=16"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url"`
	Category    string          `json:"category" validate:"omitempty,max=100"`
	Description string          `json:"description" validate:"omitempty,max=2000"`
	Stock       int             `json:"stock" validate:"omitempty,min=0"`
}

// ProductsList serves the catalog with optional category and name filters.
func ProductsList(svc productService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeInternal, "product service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.List(r.Context(), product.ListInput{
			Category: validators.SanitizeString(r.URL.Query().Get("category"), 100),
			Query:    validators.SanitizeString(r.URL.Query().Get("q"), 200),
			Limit:    limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// ProductsGet serves a single catalog entry by id.
func ProductsGet(svc productService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeValidation, "invalid product id"))
			return
		}

		item, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// ProductsCreate adds a catalog entry. Price arrives in major units.
func ProductsCreate(svc productService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeInternal, "product service unavailable"))
			return
		}

		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), product.CreateInput{
			Name:        body.Name,
			Price:       body.Price,
			Currency:    body.Currency,
			Image:       body.Image,
			ImageURL:    body.ImageURL,
			Category:    body.Category,
			Description: body.Description,
			Stock:       body.Stock,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}
