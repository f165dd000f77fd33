package api

import (
	"errors"
	"net/http"

	"github.com/mkazantsev/bookmart-api/internal/service"
	"github.com/mkazantsev/bookmart-api/internal/service/auth"
	"github.com/mkazantsev/bookmart-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwner):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		// Unknown email and wrong password share one message so
		// accounts cannot be enumerated.
		return "Incorrect email or password"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrNotOwner):
		return "Not authorized to modify this resource"

	case errors.Is(err, store.ErrSellerNotFound):
		return "Seller not found"

	case errors.Is(err, store.ErrBookNotFound):
		return "Book not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	default:
		return "An unexpected error occurred"
	}
}
