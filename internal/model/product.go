package model

import (
	"fmt"
	"net/url"
	"time"
)

// Product represents a catalogue item with its purchasable variants.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	Price       float64   `json:"price" db:"price"`
	Variants    []Variant `json:"variants"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Variant represents a purchasable option of a product. PriceDiff, when set,
// is the absolute display price for the variant; nil means the product's base
// price applies.
type Variant struct {
	ID        int64    `json:"id" db:"id"`
	ProductID int64    `json:"productId" db:"product_id"`
	Name      string   `json:"name" db:"name"`
	PriceDiff *float64 `json:"priceDiff" db:"price_diff"`
	Stock     int      `json:"stock" db:"stock"`
}

// CreateProductRequest is the payload for creating a product, optionally with
// nested variants inserted in the same transaction.
type CreateProductRequest struct {
	Name        string                 `json:"name"`
	Description *string                `json:"description,omitempty"`
	ImageURL    *string                `json:"imageUrl,omitempty"`
	Price       *float64               `json:"price"`
	Variants    []CreateVariantRequest `json:"variants,omitempty"`
}

// CreateVariantRequest is the payload for creating a single variant.
type CreateVariantRequest struct {
	Name      string   `json:"name"`
	PriceDiff *float64 `json:"priceDiff,omitempty"`
	Stock     *int     `json:"stock,omitempty"`
}

// ProductPatch is a sparse product update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// VariantPatch is a sparse variant update. Nil fields are left untouched.
type VariantPatch struct {
	Name      *string  `json:"name,omitempty"`
	PriceDiff *float64 `json:"priceDiff,omitempty"`
	Stock     *int     `json:"stock,omitempty"`
}

// Validate checks the create payload against the boundary constraints.
func (r *CreateProductRequest) Validate() error {
	if r.Name == "" {
		return NewValidationError("name must not be empty")
	}
	if r.Price == nil {
		return NewValidationError("price is required")
	}
	if *r.Price < 0 {
		return NewValidationError("price must not be negative")
	}
	if r.ImageURL != nil {
		if err := validateURL(*r.ImageURL); err != nil {
			return err
		}
	}
	for i := range r.Variants {
		if err := r.Variants[i].Validate(); err != nil {
			return NewValidationError(fmt.Sprintf("variant %d: %s", i, err.Error()))
		}
	}
	return nil
}

// Validate checks the variant create payload.
func (r *CreateVariantRequest) Validate() error {
	if r.Name == "" {
		return NewValidationError("name must not be empty")
	}
	if r.Stock != nil && *r.Stock < 0 {
		return NewValidationError("stock must not be negative")
	}
	return nil
}

// Validate checks the fields present in the patch.
func (p *ProductPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return NewValidationError("name must not be empty")
	}
	if p.Price != nil && *p.Price < 0 {
		return NewValidationError("price must not be negative")
	}
	if p.ImageURL != nil {
		if err := validateURL(*p.ImageURL); err != nil {
			return err
		}
	}
	return nil
}

// IsEmpty reports whether the patch contains no fields.
func (p *ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.ImageURL == nil && p.Price == nil
}

// Validate checks the fields present in the patch.
func (p *VariantPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return NewValidationError("name must not be empty")
	}
	if p.Stock != nil && *p.Stock < 0 {
		return NewValidationError("stock must not be negative")
	}
	return nil
}

// IsEmpty reports whether the patch contains no fields.
func (p *VariantPatch) IsEmpty() bool {
	return p.Name == nil && p.PriceDiff == nil && p.Stock == nil
}

func validateURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return NewValidationError("imageUrl must be a well-formed URL")
	}
	return nil
}
