package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mkazantsev/bookmart-api/internal/domain"
	"github.com/mkazantsev/bookmart-api/internal/platform/logger"
	"github.com/mkazantsev/bookmart-api/internal/store"
)

// PostgresBookStore implements the store.BookStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresBookStore creates a new PostgreSQL implementation of the
// BookStore interface. If logger is nil, a default logger will be used.
func NewPostgresBookStore(db *sql.DB, logger *slog.Logger) *PostgresBookStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookStore{
		db:     db,
		logger: logger.With(slog.String("component", "book_store")),
	}
}

// Ensure PostgresBookStore implements store.BookStore interface
var _ store.BookStore = (*PostgresBookStore)(nil)

// Create implements store.BookStore.Create.
func (s *PostgresBookStore) Create(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO books (title, author, year, pages, seller_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		book.Title,
		book.Author,
		book.Year,
		book.Pages,
		book.SellerID,
	).Scan(&book.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during book creation",
				slog.Int64("seller_id", book.SellerID))
			return fmt.Errorf("%w: owning seller %d", store.ErrSellerNotFound, book.SellerID)
		}
		log.Error("failed to create book",
			slog.String("error", err.Error()))
		return err
	}

	log.Info("book created",
		slog.Int64("book_id", book.ID),
		slog.Int64("seller_id", book.SellerID))
	return nil
}

// GetByID implements store.BookStore.GetByID.
func (s *PostgresBookStore) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, author, year, pages, seller_id
		FROM books
		WHERE id = $1
	`

	var book domain.Book
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Year,
		&book.Pages,
		&book.SellerID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to get book by ID",
			slog.String("error", err.Error()),
			slog.Int64("book_id", id))
		return nil, err
	}

	return &book, nil
}

// List implements store.BookStore.List.
func (s *PostgresBookStore) List(ctx context.Context) ([]*domain.Book, error) {
	return s.list(ctx, `SELECT id, title, author, year, pages, seller_id FROM books ORDER BY id`)
}

// ListBySeller implements store.BookStore.ListBySeller.
func (s *PostgresBookStore) ListBySeller(ctx context.Context, sellerID int64) ([]*domain.Book, error) {
	return s.list(
		ctx,
		`SELECT id, title, author, year, pages, seller_id FROM books WHERE seller_id = $1 ORDER BY id`,
		sellerID,
	)
}

func (s *PostgresBookStore) list(ctx context.Context, query string, args ...any) ([]*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query books",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	books := []*domain.Book{}
	for rows.Next() {
		var book domain.Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Year,
			&book.Pages,
			&book.SellerID,
		)
		if err != nil {
			log.Error("failed to scan book row",
				slog.String("error", err.Error()))
			return nil, err
		}
		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return books, nil
}

// Update implements store.BookStore.Update.
// The seller_id column is deliberately left out of the statement; a book
// never changes owners.
func (s *PostgresBookStore) Update(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("book_id", book.ID))
		return err
	}

	query := `
		UPDATE books
		SET title = $1, author = $2, year = $3, pages = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		book.Title,
		book.Author,
		book.Year,
		book.Pages,
		book.ID,
	)
	if err != nil {
		log.Error("failed to update book",
			slog.String("error", err.Error()),
			slog.Int64("book_id", book.ID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("book_id", book.ID))
		return err
	}
	if rowsAffected == 0 {
		return store.ErrBookNotFound
	}

	log.Info("book updated",
		slog.Int64("book_id", book.ID))
	return nil
}

// Delete implements store.BookStore.Delete.
func (s *PostgresBookStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete book",
			slog.String("error", err.Error()),
			slog.Int64("book_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("book_id", id))
		return err
	}
	if rowsAffected == 0 {
		return store.ErrBookNotFound
	}

	log.Info("book deleted",
		slog.Int64("book_id", id))
	return nil
}
