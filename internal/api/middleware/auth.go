// Package middleware provides HTTP middleware for the API layer.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mkazantsev/bookmart-api/internal/api/shared"
	"github.com/mkazantsev/bookmart-api/internal/domain"
	"github.com/mkazantsev/bookmart-api/internal/service/auth"
	"github.com/mkazantsev/bookmart-api/internal/store"
)

// SellerResolver resolves a verified token subject to a seller account.
type SellerResolver interface {
	GetByEmail(ctx context.Context, email string) (*domain.Seller, error)
}

// AuthMiddleware provides bearer-token authentication for routes.
// It validates the token, resolves the seller it was issued for, and
// places the seller in the request context. Every failure mode yields a
// uniform 401; callers learn nothing about which step failed.
type AuthMiddleware struct {
	jwtService auth.JWTService
	sellers    SellerResolver
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, sellers SellerResolver) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sellers:    sellers,
	}
}

// Authenticate validates bearer tokens from the Authorization header and
// adds the resolved seller to the request context for authorized requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		token := parts[1]

		// The payload identifies the seller only after the signature verifies.
		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", err)
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		seller, err := m.sellers.GetByEmail(r.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, store.ErrSellerNotFound) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}
			slog.Error("failed to resolve current seller", "error", err)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		ctx := context.WithValue(r.Context(), shared.CurrentSellerContextKey, seller)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentSeller extracts the authenticated seller from the request context.
// Returns the seller and a boolean indicating if it was found.
func CurrentSeller(r *http.Request) (*domain.Seller, bool) {
	seller, ok := r.Context().Value(shared.CurrentSellerContextKey).(*domain.Seller)
	return seller, ok && seller != nil
}
