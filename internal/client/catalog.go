package client

import (
	"context"
	"fmt"
	"net/http"

	"shoplite/internal/model"

	"github.com/rs/zerolog"
)

// Catalog is an HTTP client for the catalog service.
type Catalog struct {
	apiClient
}

// NewCatalog creates a catalog service client.
func NewCatalog(baseURL string, logger zerolog.Logger) *Catalog {
	return &Catalog{
		apiClient: newAPIClient(baseURL, logger.With().Str("client", "catalog").Logger()),
	}
}

// ListProducts retrieves the public product listing.
func (c *Catalog) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListAdminProducts retrieves the admin product listing.
func (c *Catalog) ListAdminProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/admin/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct creates a product, optionally with nested variants.
func (c *Catalog) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodPost, "/admin/products", req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies a sparse update to a product.
func (c *Catalog) UpdateProduct(ctx context.Context, id int64, patch *model.ProductPatch) (*model.Product, error) {
	var product model.Product
	path := fmt.Sprintf("/admin/products/%d", id)
	if err := c.do(ctx, http.MethodPut, path, patch, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product and all its variants.
func (c *Catalog) DeleteProduct(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/admin/products/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// AddVariant creates a variant and returns the full parent product.
func (c *Catalog) AddVariant(ctx context.Context, productID int64, req *model.CreateVariantRequest) (*model.Product, error) {
	var product model.Product
	path := fmt.Sprintf("/admin/products/%d/variants", productID)
	if err := c.do(ctx, http.MethodPost, path, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateVariant applies a sparse update to a variant and returns the full
// parent product.
func (c *Catalog) UpdateVariant(ctx context.Context, productID, variantID int64, patch *model.VariantPatch) (*model.Product, error) {
	var product model.Product
	path := fmt.Sprintf("/admin/products/%d/variants/%d", productID, variantID)
	if err := c.do(ctx, http.MethodPut, path, patch, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteVariant removes a single variant.
func (c *Catalog) DeleteVariant(ctx context.Context, productID, variantID int64) error {
	path := fmt.Sprintf("/admin/products/%d/variants/%d", productID, variantID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
