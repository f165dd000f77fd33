package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/mkazantsev/bookmart-api/internal/domain"
	"github.com/mkazantsev/bookmart-api/internal/platform/logger"
	"github.com/mkazantsev/bookmart-api/internal/store"
)

// PostgresSellerStore implements the store.SellerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSellerStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresSellerStore creates a new PostgreSQL implementation of the
// SellerStore interface. It accepts a database connection that should be
// initialized and managed by the caller. If logger is nil, a default
// logger will be used.
func NewPostgresSellerStore(db *sql.DB, logger *slog.Logger) *PostgresSellerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSellerStore{
		db:     db,
		logger: logger.With(slog.String("component", "seller_store")),
	}
}

// Ensure PostgresSellerStore implements store.SellerStore interface
var _ store.SellerStore = (*PostgresSellerStore)(nil)

// Create implements store.SellerStore.Create.
// A duplicate email surfaces as store.ErrEmailExists, mapped from the
// database's unique-constraint violation at insert time. The single
// INSERT is atomic, so nothing partial survives a conflict.
func (s *PostgresSellerStore) Create(ctx context.Context, seller *domain.Seller) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := seller.Validate(); err != nil {
		log.Warn("seller validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO sellers (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		seller.FirstName,
		seller.LastName,
		seller.Email,
		seller.HashedPassword,
	).Scan(&seller.ID)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate email during seller creation",
				slog.String("email", seller.Email))
			return store.ErrEmailExists
		}
		log.Error("failed to create seller",
			slog.String("error", err.Error()))
		return err
	}

	log.Info("seller created",
		slog.Int64("seller_id", seller.ID))
	return nil
}

// GetByID implements store.SellerStore.GetByID.
func (s *PostgresSellerStore) GetByID(ctx context.Context, id int64) (*domain.Seller, error) {
	return s.getBy(ctx, "id = $1", id)
}

// GetByEmail implements store.SellerStore.GetByEmail.
func (s *PostgresSellerStore) GetByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	return s.getBy(ctx, "email = $1", email)
}

func (s *PostgresSellerStore) getBy(ctx context.Context, where string, arg any) (*domain.Seller, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, first_name, last_name, email, password_hash
		FROM sellers
		WHERE ` + where

	var seller domain.Seller
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&seller.ID,
		&seller.FirstName,
		&seller.LastName,
		&seller.Email,
		&seller.HashedPassword,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSellerNotFound
		}
		log.Error("failed to get seller",
			slog.String("error", err.Error()))
		return nil, err
	}

	return &seller, nil
}

// List implements store.SellerStore.List.
func (s *PostgresSellerStore) List(ctx context.Context) ([]*domain.Seller, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, first_name, last_name, email, password_hash
		FROM sellers
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list sellers",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	sellers := []*domain.Seller{}
	for rows.Next() {
		var seller domain.Seller
		err := rows.Scan(
			&seller.ID,
			&seller.FirstName,
			&seller.LastName,
			&seller.Email,
			&seller.HashedPassword,
		)
		if err != nil {
			log.Error("failed to scan seller row",
				slog.String("error", err.Error()))
			return nil, err
		}
		sellers = append(sellers, &seller)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return sellers, nil
}

// Update implements store.SellerStore.Update.
func (s *PostgresSellerStore) Update(ctx context.Context, seller *domain.Seller) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := seller.Validate(); err != nil {
		log.Warn("seller validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("seller_id", seller.ID))
		return err
	}

	query := `
		UPDATE sellers
		SET first_name = $1, last_name = $2, email = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		seller.FirstName,
		seller.LastName,
		seller.Email,
		seller.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate email during seller update",
				slog.Int64("seller_id", seller.ID))
			return store.ErrEmailExists
		}
		log.Error("failed to update seller",
			slog.String("error", err.Error()),
			slog.Int64("seller_id", seller.ID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("seller_id", seller.ID))
		return err
	}
	if rowsAffected == 0 {
		return store.ErrSellerNotFound
	}

	log.Info("seller updated",
		slog.Int64("seller_id", seller.ID))
	return nil
}

// Delete implements store.SellerStore.Delete.
// The seller's books are removed first, then the seller, all inside one
// transaction. Any failure rolls back both deletions, so the store can
// never hold a seller without its books or books without their seller.
func (s *PostgresSellerStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM books WHERE seller_id = $1`, id); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM sellers WHERE id = $1`, id)
		if err != nil {
			return err
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return store.ErrSellerNotFound
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, store.ErrSellerNotFound) {
			return err
		}
		log.Error("failed to delete seller",
			slog.String("error", err.Error()),
			slog.Int64("seller_id", id))
		return err
	}

	log.Info("seller deleted with owned books",
		slog.Int64("seller_id", id))
	return nil
}
