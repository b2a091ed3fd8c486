package repository

import (
	"context"
	"fmt"
	"strings"

	"shoplite/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *productRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// GetAll retrieves all products with their variants, both ordered by ascending id.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, description, image_url, price, created_at
		FROM products
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Price, &p.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Variants = []model.Variant{}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	if err := r.attachVariants(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// GetByID retrieves a single product with its variants ordered by ascending id.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT id, name, description, image_url, price, created_at
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Price, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	p.Variants = []model.Variant{}
	list := []model.Product{p}
	if err := r.attachVariants(ctx, list); err != nil {
		return nil, err
	}

	return &list[0], nil
}

// Exists reports whether a product with the given id exists.
func (r *productRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to check product existence")
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}

	return exists, nil
}

// Create inserts a new product within the provided transaction.
func (r *productRepository) Create(ctx context.Context, tx pgx.Tx, product *model.Product) error {
	query := `
		INSERT INTO products (name, description, image_url, price, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.ImageURL,
		product.Price,
		product.CreatedAt,
	).Scan(&product.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().
		Int64("product_id", product.ID).
		Str("name", product.Name).
		Msg("product created successfully")

	return nil
}

// Update applies the non-nil patch fields to the stored product.
func (r *productRepository) Update(ctx context.Context, id int64, patch *model.ProductPatch) error {
	sets := []string{}
	args := []interface{}{}
	argIndex := 1

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if patch.Name != nil {
		appendSet("name", *patch.Name)
	}
	if patch.Description != nil {
		appendSet("description", *patch.Description)
	}
	if patch.ImageURL != nil {
		appendSet("image_url", *patch.ImageURL)
	}
	if patch.Price != nil {
		appendSet("price", *patch.Price)
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", strings.Join(sets, ", "), argIndex)
	args = append(args, id)

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// Delete removes the product row within the provided transaction.
func (r *productRepository) Delete(ctx context.Context, tx pgx.Tx, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// DeleteAll removes every product row within the provided transaction.
func (r *productRepository) DeleteAll(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		r.logger.Error().Err(err).Msg("failed to delete all products")
		return fmt.Errorf("failed to delete all products: %w", err)
	}
	return nil
}

// attachVariants loads the variants for the given products in a single query
// and attaches them to their owners, preserving ascending id order.
func (r *productRepository) attachVariants(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int64, len(products))
	index := make(map[int64]int, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = i
	}

	query := `
		SELECT id, product_id, name, price_diff, stock
		FROM variants
		WHERE product_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query variants")
		return fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v model.Variant
		err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.PriceDiff, &v.Stock)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan variant row")
			return fmt.Errorf("failed to scan variant: %w", err)
		}
		i, ok := index[v.ProductID]
		if !ok {
			continue
		}
		products[i].Variants = append(products[i].Variants, v)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating variant rows")
		return fmt.Errorf("error iterating variants: %w", err)
	}

	return nil
}
