package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Fields carries per-field validation details for VALIDATION_FAILED errors.
	// Validation failures are accumulated, never fail-fast on the first field.
	Fields map[string][]string `json:"fields,omitempty"`
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

// NewValidationError creates a VALIDATION_FAILED error with per-field details
func NewValidationError(fields map[string][]string) *DomainError {
	return &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: "Validation failed",
		Fields:  fields,
	}
}

// NewMalformedFeedError creates a MALFORMED_FEED error with detail
func NewMalformedFeedError(detail string) *DomainError {
	return &DomainError{
		Code:    "MALFORMED_FEED",
		Message: fmt.Sprintf("Malformed feed: %s", detail),
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists     = NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	ErrForbidden         = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrBasketActive      = NewDomainError("BASKET_ACTIVE", "Cannot delete an active basket order")
	ErrMissingContact    = NewDomainError("MISSING_CONTACT", "A delivery contact is required to place the order")
	ErrSourceUnreachable = NewDomainError("SOURCE_UNREACHABLE", "Feed source could not be fetched")
)
