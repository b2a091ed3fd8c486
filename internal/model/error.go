package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeVariantNotFound  = "VARIANT_NOT_FOUND"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError carries a stable error code alongside a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a domain error for a rejected input, naming the
// offending constraint.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidationFailed, message)
}

// Common domain errors. A variant that exists but belongs to a different
// product is reported as ErrVariantNotFound, indistinguishable from a variant
// that does not exist at all.
var (
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrVariantNotFound = NewDomainError(ErrCodeVariantNotFound, "Variant not found")
)
