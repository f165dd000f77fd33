package store

import (
	"context"

	"github.com/mkazantsev/bookmart-api/internal/domain"
)

// SellerStore defines the interface for seller data persistence.
type SellerStore interface {
	// Create saves a new seller and assigns its ID.
	// Returns ErrEmailExists if the email is already taken; the conflict is
	// detected from the database's unique constraint, not a pre-check.
	// Returns validation errors from the domain Seller if data is invalid.
	Create(ctx context.Context, seller *domain.Seller) error

	// GetByID retrieves a seller by their unique ID.
	// Returns ErrSellerNotFound if the seller does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Seller, error)

	// GetByEmail retrieves a seller by their email address.
	// Returns ErrSellerNotFound if the seller does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Seller, error)

	// List returns all sellers.
	List(ctx context.Context) ([]*domain.Seller, error)

	// Update saves the seller's profile fields (name, email).
	// Returns ErrSellerNotFound if the seller does not exist.
	// Returns ErrEmailExists if updating to an email that is already taken.
	Update(ctx context.Context, seller *domain.Seller) error

	// Delete removes the seller and every book it owns inside a single
	// transaction. Either both sides are gone or neither is; no orphaned
	// books can remain. Returns ErrSellerNotFound if the seller does not exist.
	Delete(ctx context.Context, id int64) error
}
