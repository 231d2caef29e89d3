package dto

import "net/http"

// Error codes shared between the application layer and the HTTP surface.
// Domain errors carry these codes; the handlers translate them to status
// codes through ErrorCodeHTTPStatus.
const (
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL"
	// ErrCodeBadRequest is used for malformed request bodies
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidationFailed is used for field-level validation failures
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	// ErrCodeAuthRequired is used when authentication is missing or invalid
	ErrCodeAuthRequired = "AUTH_REQUIRED"
	// ErrCodeForbidden is used when the account lacks the required role
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource does not exist
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeAlreadyExists is used when a duplicate resource is created
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	// ErrCodeInvalidToken is used when a confirmation token does not match
	ErrCodeInvalidToken = "INVALID_TOKEN"
	// ErrCodeInvalidState is used when a transition is not allowed
	ErrCodeInvalidState = "INVALID_STATE"
	// ErrCodeBasketActive is used when deleting an order still in the basket state
	ErrCodeBasketActive = "BASKET_ACTIVE"
	// ErrCodeMissingContact is used when checkout lacks a delivery contact
	ErrCodeMissingContact = "MISSING_CONTACT"
	// ErrCodeEmptyBasket is used when checkout finds no items
	ErrCodeEmptyBasket = "EMPTY_BASKET"
	// ErrCodeMalformedFeed is used when a partner feed fails validation
	ErrCodeMalformedFeed = "MALFORMED_FEED"
	// ErrCodeSourceUnreachable is used when a feed URL cannot be fetched
	ErrCodeSourceUnreachable = "SOURCE_UNREACHABLE"
	// ErrCodeImportInProgress is used when another import holds the partner lock
	ErrCodeImportInProgress = "IMPORT_IN_PROGRESS"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeValidationFailed: http.StatusBadRequest,
	ErrCodeMalformedFeed:    http.StatusBadRequest,
	ErrCodeInvalidToken:     http.StatusBadRequest,

	ErrCodeAuthRequired: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	ErrCodeInvalidState:   http.StatusUnprocessableEntity,
	ErrCodeBasketActive:   http.StatusUnprocessableEntity,
	ErrCodeMissingContact: http.StatusUnprocessableEntity,
	ErrCodeEmptyBasket:    http.StatusUnprocessableEntity,

	ErrCodeImportInProgress:  http.StatusConflict,
	ErrCodeSourceUnreachable: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
