package router

import (
	"net/http"

	"shoplite/internal/handler"
	"shoplite/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates the catalog service router with all routes and middleware
// configured.
func New(
	productHandler *handler.ProductHandler,
	adminHandler *handler.AdminHandler,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Public read endpoints
	mux.HandleFunc("GET /products", productHandler.List)
	mux.HandleFunc("GET /products/{id}", productHandler.Get)

	// Admin CRUD endpoints
	mux.HandleFunc("GET /admin/products", adminHandler.ListProducts)
	mux.HandleFunc("POST /admin/products", adminHandler.CreateProduct)
	mux.HandleFunc("PUT /admin/products/{id}", adminHandler.UpdateProduct)
	mux.HandleFunc("DELETE /admin/products/{id}", adminHandler.DeleteProduct)
	mux.HandleFunc("POST /admin/products/{id}/variants", adminHandler.AddVariant)
	mux.HandleFunc("PUT /admin/products/{id}/variants/{variantId}", adminHandler.UpdateVariant)
	mux.HandleFunc("DELETE /admin/products/{id}/variants/{variantId}", adminHandler.DeleteVariant)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
