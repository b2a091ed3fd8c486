// Package web implements the storefront backend: session-held carts, pricing,
// and passthrough endpoints for the catalog and sales services.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"shoplite/internal/cart"
	"shoplite/internal/client"
	"shoplite/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const sessionCookie = "shoplite_session"

// Handler serves the storefront and admin passthrough endpoints.
type Handler struct {
	catalog *client.Catalog
	sales   *client.Sales
	carts   *cart.Store
	logger  zerolog.Logger
}

// NewHandler creates a new web handler.
func NewHandler(catalog *client.Catalog, sales *client.Sales, carts *cart.Store, logger zerolog.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		sales:   sales,
		carts:   carts,
		logger:  logger.With().Str("handler", "web").Logger(),
	}
}

// cartResponse is the cart state with derived amounts.
type cartResponse struct {
	Items     []cart.Item `json:"items"`
	TaxRate   float64     `json:"taxRate"`
	Subtotal  float64     `json:"subtotal"`
	TaxAmount float64     `json:"taxAmount"`
	Total     float64     `json:"total"`
}

// Products handles GET /api/products. A catalog outage degrades to an empty
// listing rather than an error page.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch products")
		writeJSON(w, http.StatusOK, []model.Product{})
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetCart handles GET /api/cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)
	writeJSON(w, http.StatusOK, h.buildCart(r, sessionID))
}

// AddCartItem handles POST /api/cart/items.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)

	var item cart.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid JSON payload", h.logger)
		return
	}

	if item.ProductID < 1 {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "productId is required", h.logger)
		return
	}
	if item.Name == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "name is required", h.logger)
		return
	}
	if item.Quantity < 1 {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "quantity must be at least 1", h.logger)
		return
	}
	if item.Price < 0 {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "price must not be negative", h.logger)
		return
	}

	h.carts.Add(sessionID, item)

	writeJSON(w, http.StatusCreated, h.buildCart(r, sessionID))
}

// RemoveCartItem handles DELETE /api/cart/items/{index}.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid index parameter", h.logger)
		return
	}

	if err := h.carts.Remove(sessionID, index); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.buildCart(r, sessionID))
}

// ClearCart handles DELETE /api/cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)
	h.carts.Clear(sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// Checkout handles POST /api/checkout. Checkout is refused for an empty cart;
// on success the cart is cleared.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)

	items := h.carts.Get(sessionID)
	if len(items) == 0 {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "cart is empty", h.logger)
		return
	}

	checkoutItems := make([]client.CheckoutItem, len(items))
	for i, item := range items {
		checkoutItems[i] = client.CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			VariantID: item.VariantID,
			Name:      item.Name,
		}
	}

	resp, err := h.sales.CreateOrder(r.Context(), checkoutItems)
	if err != nil {
		h.logger.Error().Err(err).Int("item_count", len(items)).Msg("failed to submit order")
		writeError(w, http.StatusBadGateway, model.ErrCodeInternalError, "failed to submit order", h.logger)
		return
	}

	h.carts.Clear(sessionID)

	h.logger.Info().
		Int64("order_id", resp.OrderID).
		Int("item_count", len(items)).
		Msg("order submitted successfully")

	writeJSON(w, http.StatusCreated, resp)
}

// GetTax handles GET /api/admin/tax.
func (h *Handler) GetTax(w http.ResponseWriter, r *http.Request) {
	amount, err := h.sales.GetTaxRate(r.Context())
	if err != nil {
		h.upstreamError(w, err, "failed to fetch tax rate")
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"amount": amount})
}

// UpdateTax handles PUT /api/admin/tax.
func (h *Handler) UpdateTax(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Amount *float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid JSON payload", h.logger)
		return
	}
	if payload.Amount == nil || *payload.Amount < 0 {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "amount must be a non-negative number", h.logger)
		return
	}

	amount, err := h.sales.UpdateTaxRate(r.Context(), *payload.Amount)
	if err != nil {
		h.upstreamError(w, err, "failed to update tax rate")
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"amount": amount})
}

// Orders handles GET /api/admin/orders.
func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.sales.ListOrders(r.Context())
	if err != nil {
		h.upstreamError(w, err, "failed to fetch orders")
		return
	}
	if orders == nil {
		orders = []client.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}

// DeleteOrder handles DELETE /api/admin/orders/{id}.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid id parameter", h.logger)
		return
	}

	if err := h.sales.DeleteOrder(r.Context(), id); err != nil {
		h.upstreamError(w, err, "failed to delete order")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdminProducts handles GET /api/admin/products.
func (h *Handler) AdminProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListAdminProducts(r.Context())
	if err != nil {
		h.upstreamError(w, err, "failed to fetch products")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// CreateProduct handles POST /api/admin/products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid JSON payload", h.logger)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), &req)
	if err != nil {
		h.upstreamError(w, err, "failed to create product")
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/admin/products/{id}.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var patch model.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid JSON payload", h.logger)
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, &patch)
	if err != nil {
		h.upstreamError(w, err, "failed to update product")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/admin/products/{id}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		h.upstreamError(w, err, "failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddVariant handles POST /api/admin/products/{id}/variants.
func (h *Handler) AddVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.CreateVariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid JSON payload", h.logger)
		return
	}

	product, err := h.catalog.AddVariant(r.Context(), id, &req)
	if err != nil {
		h.upstreamError(w, err, "failed to create variant")
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// UpdateVariant handles PUT /api/admin/products/{id}/variants/{variantId}.
func (h *Handler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	variantID, ok := h.pathID(w, r, "variantId")
	if !ok {
		return
	}

	var patch model.VariantPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid JSON payload", h.logger)
		return
	}

	product, err := h.catalog.UpdateVariant(r.Context(), id, variantID, &patch)
	if err != nil {
		h.upstreamError(w, err, "failed to update variant")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// DeleteVariant handles DELETE /api/admin/products/{id}/variants/{variantId}.
func (h *Handler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	variantID, ok := h.pathID(w, r, "variantId")
	if !ok {
		return
	}

	if err := h.catalog.DeleteVariant(r.Context(), id, variantID); err != nil {
		h.upstreamError(w, err, "failed to delete variant")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// buildCart assembles the cart response. A failed tax fetch falls back to a
// zero rate so the cart still renders.
func (h *Handler) buildCart(r *http.Request, sessionID string) cartResponse {
	items := h.carts.Get(sessionID)

	taxRate, err := h.sales.GetTaxRate(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to fetch tax rate, defaulting to zero")
		taxRate = 0
	}

	totals := cart.ComputeTotals(items, taxRate)

	return cartResponse{
		Items:     items,
		TaxRate:   taxRate,
		Subtotal:  totals.Subtotal,
		TaxAmount: totals.TaxAmount,
		Total:     totals.Total,
	}
}

// sessionID returns the session id from the request cookie, issuing a new one
// when absent.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

// pathID parses a positive integer path parameter, writing a 400 on failure.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid "+name+" parameter", h.logger)
		return 0, false
	}
	return id, true
}

// upstreamError maps a client error to a response. Upstream status codes (404
// from the catalog, for instance) pass through with their message; anything
// else becomes a generic bad gateway.
func (h *Handler) upstreamError(w http.ResponseWriter, err error, generic string) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		writeError(w, apiErr.StatusCode, model.ErrCodeInternalError, apiErr.Message, h.logger)
		return
	}

	h.logger.Error().Err(err).Msg(generic)
	writeError(w, http.StatusBadGateway, model.ErrCodeInternalError, generic, h.logger)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}
