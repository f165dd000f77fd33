package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mkazantsev/bookmart-api/internal/api/shared"
	"github.com/mkazantsev/bookmart-api/internal/service"
	"github.com/mkazantsev/bookmart-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	sellerService service.SellerService
	jwtService    auth.JWTService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(sellerService service.SellerService, jwtService auth.JWTService) *AuthHandler {
	return &AuthHandler{
		sellerService: sellerService,
		jwtService:    jwtService,
	}
}

// Login handles the token endpoint. It exchanges valid credentials for a
// short-lived bearer token bound to the seller's email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	seller, err := h.sellerService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, GetSafeErrorMessage(err))
			return
		}
		slog.Error("failed to authenticate seller", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), seller.Email)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "seller_id", seller.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
