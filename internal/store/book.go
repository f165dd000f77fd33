package store

import (
	"context"

	"github.com/mkazantsev/bookmart-api/internal/domain"
)

// BookStore defines the interface for book data persistence.
type BookStore interface {
	// Create saves a new book and assigns its ID.
	// Returns validation errors from the domain Book if data is invalid.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book by its unique ID.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Book, error)

	// List returns all books.
	List(ctx context.Context) ([]*domain.Book, error)

	// ListBySeller returns all books owned by the given seller.
	ListBySeller(ctx context.Context, sellerID int64) ([]*domain.Book, error)

	// Update saves the book's listing fields. The owner never changes.
	// Returns ErrBookNotFound if the book does not exist.
	Update(ctx context.Context, book *domain.Book) error

	// Delete removes a book by its ID.
	// Returns ErrBookNotFound if the book does not exist.
	Delete(ctx context.Context, id int64) error
}
