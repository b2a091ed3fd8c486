package service

import (
	"context"

	"shoplite/internal/model"
)

// CatalogService defines operations for product and variant management.
type CatalogService interface {
	// ListProducts retrieves all products with their variants, both ordered
	// by ascending id.
	ListProducts(ctx context.Context) ([]model.Product, error)

	// GetProduct retrieves a single product with its variants.
	GetProduct(ctx context.Context, id int64) (*model.Product, error)

	// CreateProduct inserts a product and any nested variants in a single
	// transaction and returns the created product.
	CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)

	// UpdateProduct applies a sparse update to an existing product and
	// returns the updated product with its variants.
	UpdateProduct(ctx context.Context, id int64, patch *model.ProductPatch) (*model.Product, error)

	// RemoveProduct deletes a product and all its variants atomically.
	RemoveProduct(ctx context.Context, id int64) error

	// AddVariant creates a variant under an existing product and returns the
	// parent product re-fetched with the full variant set.
	AddVariant(ctx context.Context, productID int64, req *model.CreateVariantRequest) (*model.Product, error)

	// UpdateVariant applies a sparse update to a variant after verifying it
	// belongs to the given product, and returns the parent product re-fetched
	// in full.
	UpdateVariant(ctx context.Context, productID, variantID int64, patch *model.VariantPatch) (*model.Product, error)

	// RemoveVariant deletes a single variant after verifying ownership.
	RemoveVariant(ctx context.Context, productID, variantID int64) error
}
