package handler

import (
	"net/http"

	"shoplite/internal/model"
	"shoplite/internal/service"

	"github.com/rs/zerolog"
)

// AdminHandler handles the admin catalogue CRUD endpoints.
type AdminHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(service service.CatalogService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("handler", "admin").Logger(),
	}
}

// ListProducts handles GET /admin/products requests.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// CreateProduct handles POST /admin/products requests.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /admin/products/{id} requests.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "id")
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	var patch model.ProductPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id, &patch)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /admin/products/{id} requests.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "id")
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := h.service.RemoveProduct(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddVariant handles POST /admin/products/{id}/variants requests.
func (h *AdminHandler) AddVariant(w http.ResponseWriter, r *http.Request) {
	productID, err := parsePathID(r, "id")
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	var req model.CreateVariantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	product, err := h.service.AddVariant(r.Context(), productID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// UpdateVariant handles PUT /admin/products/{id}/variants/{variantId} requests.
func (h *AdminHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	productID, err := parsePathID(r, "id")
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	variantID, err := parsePathID(r, "variantId")
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	var patch model.VariantPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	product, err := h.service.UpdateVariant(r.Context(), productID, variantID, &patch)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// DeleteVariant handles DELETE /admin/products/{id}/variants/{variantId} requests.
func (h *AdminHandler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	productID, err := parsePathID(r, "id")
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	variantID, err := parsePathID(r, "variantId")
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := h.service.RemoveVariant(r.Context(), productID, variantID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
