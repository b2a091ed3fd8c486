package web

import (
	"net/http"

	"shoplite/internal/middleware"

	"github.com/rs/zerolog"
)

// NewRouter creates the web backend router with all routes and middleware
// configured.
func NewRouter(h *Handler, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Storefront endpoints
	mux.HandleFunc("GET /api/products", h.Products)
	mux.HandleFunc("GET /api/cart", h.GetCart)
	mux.HandleFunc("POST /api/cart/items", h.AddCartItem)
	mux.HandleFunc("DELETE /api/cart/items/{index}", h.RemoveCartItem)
	mux.HandleFunc("DELETE /api/cart", h.ClearCart)
	mux.HandleFunc("POST /api/checkout", h.Checkout)

	// Admin passthrough endpoints
	mux.HandleFunc("GET /api/admin/tax", h.GetTax)
	mux.HandleFunc("PUT /api/admin/tax", h.UpdateTax)
	mux.HandleFunc("GET /api/admin/orders", h.Orders)
	mux.HandleFunc("DELETE /api/admin/orders/{id}", h.DeleteOrder)
	mux.HandleFunc("GET /api/admin/products", h.AdminProducts)
	mux.HandleFunc("POST /api/admin/products", h.CreateProduct)
	mux.HandleFunc("PUT /api/admin/products/{id}", h.UpdateProduct)
	mux.HandleFunc("DELETE /api/admin/products/{id}", h.DeleteProduct)
	mux.HandleFunc("POST /api/admin/products/{id}/variants", h.AddVariant)
	mux.HandleFunc("PUT /api/admin/products/{id}/variants/{variantId}", h.UpdateVariant)
	mux.HandleFunc("DELETE /api/admin/products/{id}/variants/{variantId}", h.DeleteVariant)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
