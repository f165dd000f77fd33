package service

import (
	"context"
	"log/slog"

	"github.com/mkazantsev/bookmart-api/internal/domain"
	"github.com/mkazantsev/bookmart-api/internal/platform/logger"
	"github.com/mkazantsev/bookmart-api/internal/store"
)

// BookFields carries the listing fields of a book for create and update
// operations. The owner is never part of the payload; it is always the
// authenticated seller.
type BookFields struct {
	Title  string
	Author string
	Year   int
	Pages  int
}

// BookService provides book listing operations. Reads are public;
// mutations require ownership.
type BookService interface {
	// Create adds a new listing owned by the authenticated seller.
	Create(ctx context.Context, owner *domain.Seller, fields BookFields) (*domain.Book, error)

	// Get returns a book by ID. Returns store.ErrBookNotFound if absent.
	Get(ctx context.Context, id int64) (*domain.Book, error)

	// List returns all books.
	List(ctx context.Context) ([]*domain.Book, error)

	// Update replaces a book's listing fields. Only the owner may update;
	// anyone else gets ErrNotOwner (existence is confirmed first, so a
	// non-owner learns the book exists but nothing more).
	Update(ctx context.Context, current *domain.Seller, id int64, fields BookFields) (*domain.Book, error)

	// Delete removes a book. Only the owner may delete.
	Delete(ctx context.Context, current *domain.Seller, id int64) error
}

// BookServiceImpl implements the BookService interface.
type BookServiceImpl struct {
	bookStore store.BookStore
	logger    *slog.Logger
}

// NewBookService creates a new BookService.
func NewBookService(bookStore store.BookStore, logger *slog.Logger) *BookServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookServiceImpl{
		bookStore: bookStore,
		logger:    logger.With(slog.String("component", "book_service")),
	}
}

var _ BookService = (*BookServiceImpl)(nil)

// Create implements BookService.Create.
func (s *BookServiceImpl) Create(
	ctx context.Context,
	owner *domain.Seller,
	fields BookFields,
) (*domain.Book, error) {
	book, err := domain.NewBook(fields.Title, fields.Author, fields.Year, fields.Pages, owner.ID)
	if err != nil {
		return nil, err
	}

	if err := s.bookStore.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// Get implements BookService.Get.
func (s *BookServiceImpl) Get(ctx context.Context, id int64) (*domain.Book, error) {
	return s.bookStore.GetByID(ctx, id)
}

// List implements BookService.List.
func (s *BookServiceImpl) List(ctx context.Context) ([]*domain.Book, error) {
	return s.bookStore.List(ctx)
}

// Update implements BookService.Update.
func (s *BookServiceImpl) Update(
	ctx context.Context,
	current *domain.Seller,
	id int64,
	fields BookFields,
) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	book, err := s.bookStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if book.SellerID != current.ID {
		log.Debug("book update denied",
			slog.Int64("book_id", id),
			slog.Int64("owner_id", book.SellerID),
			slog.Int64("current_seller_id", current.ID))
		return nil, ErrNotOwner
	}

	book.Title = fields.Title
	book.Author = fields.Author
	book.Year = fields.Year
	book.Pages = fields.Pages

	if err := s.bookStore.Update(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// Delete implements BookService.Delete.
func (s *BookServiceImpl) Delete(ctx context.Context, current *domain.Seller, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	book, err := s.bookStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if book.SellerID != current.ID {
		log.Debug("book delete denied",
			slog.Int64("book_id", id),
			slog.Int64("owner_id", book.SellerID),
			slog.Int64("current_seller_id", current.ID))
		return ErrNotOwner
	}

	return s.bookStore.Delete(ctx, id)
}
