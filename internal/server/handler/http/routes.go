package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/disenos/catalogo/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the catalog API.
//
// Routes:
//
//	GET    /api/products                  → productHandler.List
//	POST   /api/products                  → productHandler.Create
//	GET    /api/products/{id}             → productHandler.Get (counts the visit)
//	PUT    /api/products/{id}             → productHandler.Update
//	DELETE /api/products/{id}             → productHandler.Delete
//	POST   /api/products/{id}/duplicate   → productHandler.Duplicate
//	GET    /api/products/{id}/share       → productHandler.Share
//	GET    /api/share                     → productHandler.ShareCatalog
//	GET    /api/categories                → productHandler.Categories
//	GET    /api/styles                    → productHandler.Styles
//	GET    /api/colors                    → productHandler.Colors
//	POST   /api/auth/login                → authHandler.Login
//	POST   /api/auth/register             → authHandler.Register
//
// Mutating routes require Content-Type: application/json.
func NewRouter(
	productHandler *ProductHandler,
	authHandler *AuthHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{id}", productHandler.Get)
			r.Get("/{id}/share", productHandler.Share)

			// Only allow requests with Content-Type: application/json
			r.Group(func(r chi.Router) {
				r.Use(chiMiddleware.AllowContentType("application/json"))
				r.Post("/", productHandler.Create)
				r.Put("/{id}", productHandler.Update)
				r.Delete("/{id}", productHandler.Delete)
				r.Post("/{id}/duplicate", productHandler.Duplicate)
			})
		})

		r.Get("/share", productHandler.ShareCatalog)

		r.Get("/categories", productHandler.Categories)
		r.Get("/styles", productHandler.Styles)
		r.Get("/colors", productHandler.Colors)

		r.Route("/auth", func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
		})
	})

	return r
}
