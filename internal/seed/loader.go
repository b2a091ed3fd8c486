// Package seed loads catalogue fixture files and applies them to the database,
// replacing whatever is currently stored.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"shoplite/internal/model"

	"github.com/rs/zerolog"
)

// Loader reads a seed file and returns the products it describes.
type Loader interface {
	Load(ctx context.Context, path string) ([]model.CreateProductRequest, error)
}

// fileLoader implements Loader for reading JSON seed files from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a JSON seed file. The file is expected to contain an array of
// product definitions, each optionally carrying variants.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.CreateProductRequest, error) {
	l.logger.Info().Str("file", path).Msg("loading seed file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer file.Close()

	var products []model.CreateProductRequest
	if err := json.NewDecoder(file).Decode(&products); err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode seed file")
		return nil, fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}

	if err := validate(products); err != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("products_loaded", len(products)).
		Msg("seed file loaded successfully")

	return products, nil
}

// validate checks every product definition against the same constraints the
// catalog API enforces.
func validate(products []model.CreateProductRequest) error {
	for i := range products {
		if err := products[i].Validate(); err != nil {
			return fmt.Errorf("product %d: %w", i, err)
		}
	}
	return nil
}
