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

// variantRepository implements the VariantRepository interface using PostgreSQL.
type variantRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVariantRepository creates a new PostgreSQL-backed variant repository.
func NewVariantRepository(pool *pgxpool.Pool, logger zerolog.Logger) VariantRepository {
	return &variantRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "variant").Logger(),
	}
}

// GetByID retrieves a single variant by its ID.
func (r *variantRepository) GetByID(ctx context.Context, id int64) (*model.Variant, error) {
	query := `
		SELECT id, product_id, name, price_diff, stock
		FROM variants
		WHERE id = $1
	`

	var v model.Variant
	err := r.pool.QueryRow(ctx, query, id).Scan(&v.ID, &v.ProductID, &v.Name, &v.PriceDiff, &v.Stock)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("variant_id", id).Msg("variant not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to query variant")
		return nil, fmt.Errorf("failed to query variant: %w", err)
	}

	return &v, nil
}

// Create inserts a new variant within the provided transaction.
func (r *variantRepository) Create(ctx context.Context, tx pgx.Tx, variant *model.Variant) error {
	query := `
		INSERT INTO variants (product_id, name, price_diff, stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		variant.ProductID,
		variant.Name,
		variant.PriceDiff,
		variant.Stock,
	).Scan(&variant.ID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("product_id", variant.ProductID).
			Str("name", variant.Name).
			Msg("failed to create variant")
		return fmt.Errorf("failed to create variant: %w", err)
	}

	r.logger.Debug().
		Int64("variant_id", variant.ID).
		Int64("product_id", variant.ProductID).
		Msg("variant created successfully")

	return nil
}

// Update applies the non-nil patch fields to the stored variant.
func (r *variantRepository) Update(ctx context.Context, id int64, patch *model.VariantPatch) error {
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
	if patch.PriceDiff != nil {
		appendSet("price_diff", *patch.PriceDiff)
	}
	if patch.Stock != nil {
		appendSet("stock", *patch.Stock)
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE variants SET %s WHERE id = $%d", strings.Join(sets, ", "), argIndex)
	args = append(args, id)

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		r.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to update variant")
		return fmt.Errorf("failed to update variant: %w", err)
	}

	return nil
}

// Delete removes a single variant row.
func (r *variantRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM variants WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to delete variant")
		return fmt.Errorf("failed to delete variant: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrVariantNotFound
	}

	return nil
}

// DeleteByProductID removes all variants owned by a product within the
// provided transaction.
func (r *variantRepository) DeleteByProductID(ctx context.Context, tx pgx.Tx, productID int64) error {
	query := `DELETE FROM variants WHERE product_id = $1`

	if _, err := tx.Exec(ctx, query, productID); err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to delete variants for product")
		return fmt.Errorf("failed to delete variants for product: %w", err)
	}

	return nil
}

// DeleteAll removes every variant row within the provided transaction.
func (r *variantRepository) DeleteAll(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `DELETE FROM variants`); err != nil {
		r.logger.Error().Err(err).Msg("failed to delete all variants")
		return fmt.Errorf("failed to delete all variants: %w", err)
	}
	return nil
}
