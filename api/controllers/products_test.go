package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	product "github.com/freshkart/freshkart-backend/internal/products"
	pkgerrors "github.com/freshkart/freshkart-backend/pkg/errors"
)

type stubProductService struct {
	items    []product.ProductDTO
	item     *product.ProductDTO
	err      error
	lastList product.ListInput
}

func (s *stubProductService) List(ctx context.Context, input product.ListInput) ([]product.ProductDTO, error) {
	s.lastList = input
	return s.items, s.err
}

func (s *stubProductService) Get(ctx context.Context, id uuid.UUID) (*product.ProductDTO, error) {
	return s.item, s.err
}

func (s *stubProductService) Create(ctx context.Context, input product.CreateInput) (*product.ProductDTO, error) {
	return s.item, s.err
}

func TestProductsListPassesFilters(t *testing.T) {
	svc := &stubProductService{items: []product.ProductDTO{{Name: "Red Apple", Price: "40.00"}}}
	handler := ProductsList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=Fruits&q=apple&limit=10", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastList.Category != "Fruits" || svc.lastList.Query != "apple" || svc.lastList.Limit != 10 {
		t.Fatalf("unexpected list input %+v", svc.lastList)
	}

	var envelope struct {
		Data []product.ProductDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Price != "40.00" {
		t.Fatalf("expected single product priced 40.00 got %+v", envelope.Data)
	}
}

func TestProductsListRejectsBadLimit(t *testing.T) {
	handler := ProductsList(&stubProductService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products?limit=nope", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductsGetInvalidID(t *testing.T) {
	handler := ProductsGet(&stubProductService{}, nil)

	router := chi.NewRouter()
	router.Get("/api/products/{id}", handler)

	req := httptest.NewRequest(http.MethodGet, "/api/products/not-a-uuid", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductsGetNotFound(t *testing.T) {
	handler := ProductsGet(&stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}, nil)

	router := chi.NewRouter()
	router.Get("/api/products/{id}", handler)

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestProductsCreateSuccess(t *testing.T) {
	created := &product.ProductDTO{ID: uuid.New(), Name: "Paneer 200g", Price: "120.00", Currency: "inr"}
	handler := ProductsCreate(&stubProductService{item: created}, nil)

	body := `{"name":"Paneer 200g","price":120,"category":"Dairy","stock":25}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data product.ProductDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Name != "Paneer 200g" || envelope.Data.Price != "120.00" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestProductsCreateMissingName(t *testing.T) {
	handler := ProductsCreate(&stubProductService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader([]byte(`{"price":10}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
