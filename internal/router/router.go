package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"autoparts-storefront-api/internal/handler"
	"autoparts-storefront-api/internal/middleware"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler          *handler.Handler
	InventoryHandler *handler.InventoryHandler
	ProductsHandler  *handler.ProductsHandler
	ProvidersHandler *handler.ProvidersHandler
	CartHandler      *handler.CartHandler
	CaptchaHandler   *handler.CaptchaHandler
	AuthHandler      *handler.AuthHandler
	AdminHandler     *handler.AdminHandler
	AuthMiddleware   func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-API-Key", "X-Token", "X-Session-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Unified status endpoint for uptime monitoring - public
	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	// PUBLIC storefront routes (no auth required)
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		if cfg.AuthHandler != nil {
			r.Post("/auth/sign-in", cfg.AuthHandler.SignIn)
			r.Post("/auth/refresh", cfg.AuthHandler.Refresh)
			r.Post("/auth/sign-out", cfg.AuthHandler.SignOut)
		}

		if cfg.CaptchaHandler != nil {
			r.Route("/captcha", func(r chi.Router) {
				r.Post("/", cfg.CaptchaHandler.New)
				r.Post("/verify", cfg.CaptchaHandler.Verify)
			})
		}

		if cfg.InventoryHandler != nil {
			r.Get("/inventory", cfg.InventoryHandler.List)
		}

		if cfg.ProductsHandler != nil {
			r.Get("/products", cfg.ProductsHandler.List)
			r.Get("/products/{id}", cfg.ProductsHandler.Get)
		}

		if cfg.ProvidersHandler != nil {
			r.Route("/providers", func(r chi.Router) {
				r.Get("/", cfg.ProvidersHandler.List)
				r.Get("/nearby", cfg.ProvidersHandler.Nearby)
			})
		}

		if cfg.CartHandler != nil {
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cfg.CartHandler.Get)
				r.Delete("/", cfg.CartHandler.Clear)
				r.Post("/items", cfg.CartHandler.AddItem)
				r.Put("/items/{item_id}", cfg.CartHandler.UpdateItem)
				r.Delete("/items/{item_id}", cfg.CartHandler.RemoveItem)
			})
		}

		// AUTHENTICATED routes: catalog and inventory mutations plus the
		// admin surface.
		r.Group(func(r chi.Router) {
			if cfg.AuthMiddleware != nil {
				r.Use(cfg.AuthMiddleware)
			}

			if cfg.InventoryHandler != nil {
				r.Post("/inventory", cfg.InventoryHandler.Create)
			}

			if cfg.ProductsHandler != nil {
				r.Post("/products", cfg.ProductsHandler.Create)
				r.Put("/products/{id}", cfg.ProductsHandler.Update)
				r.Delete("/products/{id}", cfg.ProductsHandler.Delete)
			}

			if cfg.AdminHandler != nil {
				r.Route("/admin", func(r chi.Router) {
					r.Get("/stats", cfg.AdminHandler.GetStats)
					r.Post("/refresh", cfg.AdminHandler.TriggerRefresh)
				})
			}
		})
	})

	return r
}
