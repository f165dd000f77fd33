package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing bearer authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed bearer token for the seller identified
	// by the given email. Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, email string) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns the claims if the token is valid, or an error if validation
	// fails (expired, invalid signature, malformed payload).
	// The payload is never trusted before the signature verifies.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the verified contents of a bearer token.
type Claims struct {
	// Email is the address of the seller the token was issued for.
	Email string

	// Standard registered JWT claims
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
