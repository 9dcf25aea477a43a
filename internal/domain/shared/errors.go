package shared

// DomainError represents a domain-level error with a stable code
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrOutOfStock       = NewDomainError("OUT_OF_STOCK", "Requested quantity is not in stock")
	ErrInvalidQuantity  = NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	ErrUpstreamFailure  = NewDomainError("UPSTREAM_FAILURE", "The storefront service could not be reached")
	ErrMalformedPayload = NewDomainError("MALFORMED_PAYLOAD", "Push event payload is missing required fields")
)
