package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mkazantsev/bookmart-api/internal/api/middleware"
	"github.com/mkazantsev/bookmart-api/internal/api/shared"
	"github.com/mkazantsev/bookmart-api/internal/domain"
)

// getPathID extracts a numeric ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.ErrInvalidID
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}

	return id, nil
}

// requireCurrentSeller extracts the authenticated seller placed in the
// context by the auth middleware. It writes a 401 response and returns
// false if no seller is present (a programming error on unprotected routes).
func requireCurrentSeller(w http.ResponseWriter, r *http.Request) (*domain.Seller, bool) {
	seller, ok := middleware.CurrentSeller(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return seller, true
}

// decodeAndValidate decodes the request body into v and validates it.
// On failure it writes the appropriate error response and returns false:
// 400 for undecodable JSON, 422 for a payload that fails validation.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, "Validation error", err)
		return false
	}
	return true
}
