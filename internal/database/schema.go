package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// schema is the catalogue DDL. Variants carry a foreign key with cascading
// delete so a variant can never outlive its product.
const schema = `
	CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		image_url TEXT,
		price DECIMAL(10, 2) NOT NULL CHECK (price >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS variants (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		price_diff DECIMAL(10, 2),
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0)
	);

	CREATE INDEX IF NOT EXISTS idx_variants_product_id ON variants(product_id);
`

// EnsureSchema creates the catalogue tables when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	logger.Info().Msg("database schema ensured")

	return nil
}
