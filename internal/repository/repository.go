package repository

import (
	"context"

	"shoplite/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetAll retrieves all products with their variants, both ordered by
	// ascending id.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product with its variants ordered by
	// ascending id. Returns nil when the product does not exist.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Exists reports whether a product with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// Create inserts a new product within the provided transaction and
	// populates its generated id.
	Create(ctx context.Context, tx pgx.Tx, product *model.Product) error

	// Update applies the non-nil patch fields to the stored product.
	Update(ctx context.Context, id int64, patch *model.ProductPatch) error

	// Delete removes the product row within the provided transaction.
	Delete(ctx context.Context, tx pgx.Tx, id int64) error

	// DeleteAll removes every product row within the provided transaction.
	DeleteAll(ctx context.Context, tx pgx.Tx) error
}

// VariantRepository defines the interface for variant data access operations.
type VariantRepository interface {
	// GetByID retrieves a single variant. Returns nil when the variant does
	// not exist.
	GetByID(ctx context.Context, id int64) (*model.Variant, error)

	// Create inserts a new variant within the provided transaction and
	// populates its generated id.
	Create(ctx context.Context, tx pgx.Tx, variant *model.Variant) error

	// Update applies the non-nil patch fields to the stored variant.
	Update(ctx context.Context, id int64, patch *model.VariantPatch) error

	// Delete removes a single variant row.
	Delete(ctx context.Context, id int64) error

	// DeleteByProductID removes all variants owned by a product within the
	// provided transaction.
	DeleteByProductID(ctx context.Context, tx pgx.Tx, productID int64) error

	// DeleteAll removes every variant row within the provided transaction.
	DeleteAll(ctx context.Context, tx pgx.Tx) error
}
