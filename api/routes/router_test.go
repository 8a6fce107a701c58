package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/freshkart/freshkart-backend/internal/auth"
	"github.com/freshkart/freshkart-backend/internal/payments"
	product "github.com/freshkart/freshkart-backend/internal/products"
	"github.com/freshkart/freshkart-backend/internal/users"
	pkgAuth "github.com/freshkart/freshkart-backend/pkg/auth"
	"github.com/freshkart/freshkart-backend/pkg/config"
)

var routerJWTConfig = config.JWTConfig{
	Secret:            "router-secret",
	Issuer:            "freshkart",
	ExpirationMinutes: 30,
}

type stubSessions struct {
	active bool
}

func (s stubSessions) HasSession(ctx context.Context, accessID string) (bool, error) {
	return s.active, nil
}

func (s stubSessions) Revoke(ctx context.Context, accessID string) error {
	return nil
}

type stubAuth struct{}

func (stubAuth) Signup(ctx context.Context, req auth.SignupRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{AccessToken: "tok"}, nil
}

func (stubAuth) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{AccessToken: "tok"}, nil
}

func (stubAuth) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID, Email: "shopper@example.com"}, nil
}

type stubProducts struct{}

func (stubProducts) List(ctx context.Context, input product.ListInput) ([]product.ProductDTO, error) {
	return []product.ProductDTO{{Name: "Red Apple", Price: "40.00"}}, nil
}

func (stubProducts) Get(ctx context.Context, id uuid.UUID) (*product.ProductDTO, error) {
	return &product.ProductDTO{ID: id, Name: "Red Apple"}, nil
}

func (stubProducts) Create(ctx context.Context, input product.CreateInput) (*product.ProductDTO, error) {
	return &product.ProductDTO{Name: input.Name}, nil
}

type stubPayments struct{}

func (stubPayments) CreateIntent(ctx context.Context, input payments.CreateIntentInput) (*payments.IntentResult, error) {
	return &payments.IntentResult{PaymentIntentID: "pi_123"}, nil
}

func (stubPayments) ConfirmPayment(ctx context.Context, id string) (*payments.Confirmation, error) {
	return &payments.Confirmation{ID: id, Status: "succeeded"}, nil
}

func (stubPayments) GetIntent(ctx context.Context, id string) (*payments.IntentStatus, error) {
	return &payments.IntentStatus{ID: id, Status: "processing"}, nil
}

func buildTestRouter(t *testing.T, active bool) http.Handler {
	t.Helper()
	return NewRouter(Dependencies{
		Config: &config.Config{
			App: config.AppConfig{Env: "development", Port: "0"},
			JWT: routerJWTConfig,
		},
		SessionManager: stubSessions{active: active},
		AuthService:    stubAuth{},
		ProductService: stubProducts{},
		PaymentService: stubPayments{},
		Registry:       prometheus.NewRegistry(),
	})
}

func mintRouterToken(t *testing.T) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(routerJWTConfig, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "shopper@example.com",
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestRouterHealthLive(t *testing.T) {
	router := buildTestRouter(t, true)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-FreshKart-Env"); got != "development" {
		t.Fatalf("expected env header got %q", got)
	}
}

func TestRouterMetricsExposed(t *testing.T) {
	router := buildTestRouter(t, true)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterProductsArePublic(t *testing.T) {
	router := buildTestRouter(t, true)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []product.ProductDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected one product got %d", len(envelope.Data))
	}
}

func TestRouterPaymentRequiresAuth(t *testing.T) {
	router := buildTestRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/payment/intent/pi_123", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRouterPaymentWithValidToken(t *testing.T) {
	router := buildTestRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/payment/intent/pi_123", nil)
	req.Header.Set("Authorization", "Bearer "+mintRouterToken(t))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRouterRevokedSessionRejected(t *testing.T) {
	router := buildTestRouter(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+mintRouterToken(t))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
