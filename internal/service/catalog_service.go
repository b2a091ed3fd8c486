package service

import (
	"context"
	"fmt"
	"time"

	"shoplite/internal/model"
	"shoplite/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		variantRepo: variantRepo,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// ListProducts retrieves all products with their variants.
func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// GetProduct retrieves a single product by ID.
func (s *catalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// CreateProduct inserts a product and any nested variants in one transaction.
func (s *catalogService) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if req == nil {
		return nil, model.NewValidationError("request body is required")
	}
	if err := req.Validate(); err != nil {
		s.logger.Warn().Err(err).Msg("invalid create product request")
		return nil, err
	}

	tx, err := s.productRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       *req.Price,
		CreatedAt:   time.Now(),
	}

	if err = s.productRepo.Create(ctx, tx, product); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	for i := range req.Variants {
		variant := newVariant(product.ID, &req.Variants[i])
		if err = s.variantRepo.Create(ctx, tx, variant); err != nil {
			s.logger.Error().
				Err(err).
				Int64("product_id", product.ID).
				Int("variant_index", i).
				Msg("failed to create nested variant")
			return nil, fmt.Errorf("failed to create variant: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Int("variant_count", len(req.Variants)).
		Msg("product created successfully")

	created, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created product: %w", err)
	}

	return created, nil
}

// UpdateProduct applies a sparse update to an existing product.
func (s *catalogService) UpdateProduct(ctx context.Context, id int64, patch *model.ProductPatch) (*model.Product, error) {
	if patch == nil {
		return nil, model.NewValidationError("request body is required")
	}
	if err := patch.Validate(); err != nil {
		s.logger.Warn().Err(err).Int64("product_id", id).Msg("invalid product patch")
		return nil, err
	}

	if err := s.ensureProductExists(ctx, id); err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		if err := s.productRepo.Update(ctx, id, patch); err != nil {
			s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	updated, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}
	if updated == nil {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated successfully")

	return updated, nil
}

// RemoveProduct deletes a product and all its variants atomically.
func (s *catalogService) RemoveProduct(ctx context.Context, id int64) error {
	if err := s.ensureProductExists(ctx, id); err != nil {
		return err
	}

	tx, err := s.productRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove product: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.variantRepo.DeleteByProductID(ctx, tx, id); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete variants")
		return fmt.Errorf("failed to remove product: %w", err)
	}

	if err = s.productRepo.Delete(ctx, tx, id); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to remove product: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to commit transaction")
		return fmt.Errorf("failed to remove product: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product removed successfully")

	return nil
}

// AddVariant creates a variant under an existing product.
func (s *catalogService) AddVariant(ctx context.Context, productID int64, req *model.CreateVariantRequest) (*model.Product, error) {
	if req == nil {
		return nil, model.NewValidationError("request body is required")
	}
	if err := req.Validate(); err != nil {
		s.logger.Warn().Err(err).Int64("product_id", productID).Msg("invalid create variant request")
		return nil, err
	}

	if err := s.ensureProductExists(ctx, productID); err != nil {
		return nil, err
	}

	tx, err := s.productRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to add variant: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	variant := newVariant(productID, req)
	if err = s.variantRepo.Create(ctx, tx, variant); err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to create variant")
		return nil, fmt.Errorf("failed to add variant: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to add variant: %w", err)
	}

	s.logger.Info().
		Int64("product_id", productID).
		Int64("variant_id", variant.ID).
		Msg("variant added successfully")

	return s.fetchProduct(ctx, productID)
}

// UpdateVariant applies a sparse update to a variant after the ownership check.
func (s *catalogService) UpdateVariant(ctx context.Context, productID, variantID int64, patch *model.VariantPatch) (*model.Product, error) {
	if patch == nil {
		return nil, model.NewValidationError("request body is required")
	}
	if err := patch.Validate(); err != nil {
		s.logger.Warn().Err(err).Int64("variant_id", variantID).Msg("invalid variant patch")
		return nil, err
	}

	if err := s.ensureVariantBelongsToProduct(ctx, productID, variantID); err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		if err := s.variantRepo.Update(ctx, variantID, patch); err != nil {
			s.logger.Error().Err(err).Int64("variant_id", variantID).Msg("failed to update variant")
			return nil, fmt.Errorf("failed to update variant: %w", err)
		}
	}

	s.logger.Info().
		Int64("product_id", productID).
		Int64("variant_id", variantID).
		Msg("variant updated successfully")

	return s.fetchProduct(ctx, productID)
}

// RemoveVariant deletes a single variant after the ownership check.
func (s *catalogService) RemoveVariant(ctx context.Context, productID, variantID int64) error {
	if err := s.ensureVariantBelongsToProduct(ctx, productID, variantID); err != nil {
		return err
	}

	if err := s.variantRepo.Delete(ctx, variantID); err != nil {
		s.logger.Error().Err(err).Int64("variant_id", variantID).Msg("failed to delete variant")
		return fmt.Errorf("failed to remove variant: %w", err)
	}

	s.logger.Info().
		Int64("product_id", productID).
		Int64("variant_id", variantID).
		Msg("variant removed successfully")

	return nil
}

// ensureProductExists re-validates existence immediately before a mutation.
func (s *catalogService) ensureProductExists(ctx context.Context, id int64) error {
	exists, err := s.productRepo.Exists(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to check product existence")
		return fmt.Errorf("failed to check product existence: %w", err)
	}
	if !exists {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return model.ErrProductNotFound
	}
	return nil
}

// ensureVariantBelongsToProduct verifies the variant exists and its owner
// matches the product id from the request path. A mismatch yields the same
// error as absence.
func (s *catalogService) ensureVariantBelongsToProduct(ctx context.Context, productID, variantID int64) error {
	variant, err := s.variantRepo.GetByID(ctx, variantID)
	if err != nil {
		s.logger.Error().Err(err).Int64("variant_id", variantID).Msg("failed to check variant ownership")
		return fmt.Errorf("failed to check variant ownership: %w", err)
	}
	if variant == nil || variant.ProductID != productID {
		s.logger.Debug().
			Int64("product_id", productID).
			Int64("variant_id", variantID).
			Msg("variant not found for product")
		return model.ErrVariantNotFound
	}
	return nil
}

// fetchProduct re-fetches the full product state after a variant mutation.
// Callers treat the response as authoritative, not a delta.
func (s *catalogService) fetchProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// newVariant builds a variant from a create payload, applying the stock
// default of zero.
func newVariant(productID int64, req *model.CreateVariantRequest) *model.Variant {
	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	return &model.Variant{
		ProductID: productID,
		Name:      req.Name,
		PriceDiff: req.PriceDiff,
		Stock:     stock,
	}
}
