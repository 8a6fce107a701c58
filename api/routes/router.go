package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/freshkart/freshkart-backend/api/controllers"
	"github.com/freshkart/freshkart-backend/api/middleware"
	"github.com/freshkart/freshkart-backend/internal/auth"
	"github.com/freshkart/freshkart-backend/internal/payments"
	product "github.com/freshkart/freshkart-backend/internal/products"
	"github.com/freshkart/freshkart-backend/pkg/auth/session"
	"github.com/freshkart/freshkart-backend/pkg/config"
	"github.com/freshkart/freshkart-backend/pkg/logger"
	"github.com/freshkart/freshkart-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Revoke(context.Context, string) error
}

// Dependencies bundles everything the HTTP surface needs. Nil optional
// members (redis, metrics registry) degrade the matching feature instead of
// panicking.
type Dependencies struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          *redis.Client
	SessionManager sessionManager
	AuthService    auth.Service
	ProductService product.Service
	PaymentService payments.Service
	Registry       *prometheus.Registry
}

// NewRouter wires middleware, health probes, and the API route groups.
func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.CORS())

	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
		"database": deps.DB,
		"redis":    redisPinger(deps.Redis),
	}))

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	authMW := middleware.Auth(cfg.JWT, deps.SessionManager, logg)
	idempotencyMW := middleware.Idempotency(idempotencyStore(deps.Redis), logg)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(idempotencyMW).Post("/signup", controllers.AuthSignup(deps.AuthService, logg))
			r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))

			r.Group(func(r chi.Router) {
				r.Use(authMW)
				r.Get("/me", controllers.AuthMe(deps.AuthService, logg))
				r.Post("/logout", controllers.AuthLogout(deps.SessionManager, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(deps.ProductService, logg))
			r.Get("/{id}", controllers.ProductsGet(deps.ProductService, logg))
			r.With(authMW).Post("/", controllers.ProductsCreate(deps.ProductService, logg))
		})

		r.Route("/payment", func(r chi.Router) {
			r.Use(authMW)
			r.Use(idempotencyMW)
			r.Post("/create-intent", controllers.PaymentCreateIntent(deps.PaymentService, logg))
			r.Post("/confirm", controllers.PaymentConfirm(deps.PaymentService, logg))
			r.Get("/intent/{id}", controllers.PaymentGetIntent(deps.PaymentService, logg))
		})
	})

	return r
}

func redisPinger(client *redis.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}

func idempotencyStore(client *redis.Client) redis.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}
