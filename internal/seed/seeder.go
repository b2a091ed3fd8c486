package seed

import (
	"context"
	"fmt"
	"time"

	"shoplite/internal/model"
	"shoplite/internal/repository"

	"github.com/rs/zerolog"
)

// Seeder replaces the stored catalogue with the contents of a seed file.
type Seeder struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
	logger      zerolog.Logger
}

// NewSeeder creates a new catalogue seeder.
func NewSeeder(productRepo repository.ProductRepository, variantRepo repository.VariantRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		productRepo: productRepo,
		variantRepo: variantRepo,
		logger:      logger.With().Str("component", "seeder").Logger(),
	}
}

// Apply wipes the catalogue and inserts the given products with their
// variants. The whole operation runs in a single transaction so a failure
// leaves the previous catalogue intact.
func (s *Seeder) Apply(ctx context.Context, products []model.CreateProductRequest) (err error) {
	tx, err := s.productRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.variantRepo.DeleteAll(ctx, tx); err != nil {
		return fmt.Errorf("failed to clear variants: %w", err)
	}
	if err = s.productRepo.DeleteAll(ctx, tx); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	variantCount := 0
	for i := range products {
		req := &products[i]

		product := &model.Product{
			Name:        req.Name,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Price:       *req.Price,
			CreatedAt:   time.Now(),
		}
		if err = s.productRepo.Create(ctx, tx, product); err != nil {
			return fmt.Errorf("failed to insert product %q: %w", req.Name, err)
		}

		for j := range req.Variants {
			vreq := &req.Variants[j]

			variant := &model.Variant{
				ProductID: product.ID,
				Name:      vreq.Name,
				PriceDiff: vreq.PriceDiff,
			}
			if vreq.Stock != nil {
				variant.Stock = *vreq.Stock
			}
			if err = s.variantRepo.Create(ctx, tx, variant); err != nil {
				return fmt.Errorf("failed to insert variant %q of product %q: %w", vreq.Name, req.Name, err)
			}
			variantCount++
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info().
		Int("products", len(products)).
		Int("variants", variantCount).
		Msg("catalogue seeded successfully")

	return nil
}
