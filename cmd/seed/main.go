package main

import (
	"context"
	"fmt"
	"os"

	"shoplite/internal/config"
	"shoplite/internal/database"
	"shoplite/internal/repository"
	"shoplite/internal/seed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting catalogue seeder")

	ctx := context.Background()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Ensure the schema exists before loading data
	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}

	// Choose the seed source: S3 when enabled, local file otherwise
	var loader seed.Loader
	var source string

	if cfg.Seed.S3Enabled {
		loader, err = seed.NewS3Loader(ctx, cfg.Seed.S3Bucket, cfg.Seed.S3Region, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 loader: %w", err)
		}
		source = cfg.Seed.S3Key
	} else {
		loader = seed.NewFileLoader(logger)
		source = cfg.Seed.File
	}

	products, err := loader.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}

	// Apply the seed in one transaction
	productRepo := repository.NewProductRepository(pool, logger)
	variantRepo := repository.NewVariantRepository(pool, logger)
	seeder := seed.NewSeeder(productRepo, variantRepo, logger)

	if err := seeder.Apply(ctx, products); err != nil {
		return fmt.Errorf("failed to apply seed data: %w", err)
	}

	logger.Info().Str("source", source).Msg("seeding completed")
	return nil
}
