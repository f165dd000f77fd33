package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mkazantsev/bookmart-api/internal/domain"
	"github.com/mkazantsev/bookmart-api/internal/platform/logger"
	"github.com/mkazantsev/bookmart-api/internal/service/auth"
	"github.com/mkazantsev/bookmart-api/internal/store"
)

// SellerService provides seller account operations: registration, login,
// profile updates, and account deletion with its cascade to owned books.
type SellerService interface {
	// Register creates a new seller account. The plaintext password is
	// hashed before it reaches the store; it is never persisted.
	// Returns store.ErrEmailExists if the email is already taken.
	Register(ctx context.Context, firstName, lastName, email, password string) (*domain.Seller, error)

	// Authenticate verifies a seller's credentials.
	// Returns ErrInvalidCredentials for an unknown email and for a wrong
	// password alike.
	Authenticate(ctx context.Context, email, password string) (*domain.Seller, error)

	// GetByEmail resolves a seller from a verified token subject.
	GetByEmail(ctx context.Context, email string) (*domain.Seller, error)

	// List returns all sellers.
	List(ctx context.Context) ([]*domain.Seller, error)

	// GetDetail returns a seller together with all books it owns.
	GetDetail(ctx context.Context, id int64) (*domain.Seller, []*domain.Book, error)

	// Update applies a partial profile update. Only the account owner may
	// update; anyone else gets ErrNotOwner (existence is confirmed first).
	Update(ctx context.Context, current *domain.Seller, id int64, update domain.SellerUpdate) (*domain.Seller, error)

	// Delete removes the seller and, atomically, every book it owns.
	// Only the account owner may delete; anyone else gets ErrNotOwner.
	Delete(ctx context.Context, current *domain.Seller, id int64) error
}

// SellerServiceImpl implements the SellerService interface.
type SellerServiceImpl struct {
	sellerStore store.SellerStore
	bookStore   store.BookStore
	hasher      auth.PasswordHasher
	logger      *slog.Logger
}

// NewSellerService creates a new SellerService.
func NewSellerService(
	sellerStore store.SellerStore,
	bookStore store.BookStore,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *SellerServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &SellerServiceImpl{
		sellerStore: sellerStore,
		bookStore:   bookStore,
		hasher:      hasher,
		logger:      logger.With(slog.String("component", "seller_service")),
	}
}

var _ SellerService = (*SellerServiceImpl)(nil)

// Register implements SellerService.Register.
func (s *SellerServiceImpl) Register(
	ctx context.Context,
	firstName, lastName, email, password string,
) (*domain.Seller, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, err
	}

	seller, err := domain.NewSeller(firstName, lastName, email, hashed)
	if err != nil {
		return nil, err
	}

	// Duplicate emails surface from the store's unique constraint.
	if err := s.sellerStore.Create(ctx, seller); err != nil {
		return nil, err
	}

	log.Info("seller registered", slog.Int64("seller_id", seller.ID))
	return seller, nil
}

// Authenticate implements SellerService.Authenticate.
func (s *SellerServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.Seller, error) {
	seller, err := s.sellerStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrSellerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(seller.HashedPassword, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return seller, nil
}

// GetByEmail implements SellerService.GetByEmail.
func (s *SellerServiceImpl) GetByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	return s.sellerStore.GetByEmail(ctx, email)
}

// List implements SellerService.List.
func (s *SellerServiceImpl) List(ctx context.Context) ([]*domain.Seller, error) {
	return s.sellerStore.List(ctx)
}

// GetDetail implements SellerService.GetDetail.
func (s *SellerServiceImpl) GetDetail(ctx context.Context, id int64) (*domain.Seller, []*domain.Book, error) {
	seller, err := s.sellerStore.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	books, err := s.bookStore.ListBySeller(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return seller, books, nil
}

// Update implements SellerService.Update.
func (s *SellerServiceImpl) Update(
	ctx context.Context,
	current *domain.Seller,
	id int64,
	update domain.SellerUpdate,
) (*domain.Seller, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	seller, err := s.sellerStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.ID != seller.ID {
		log.Debug("seller update denied",
			slog.Int64("seller_id", id),
			slog.Int64("current_seller_id", current.ID))
		return nil, ErrNotOwner
	}

	update.Apply(seller)
	if err := s.sellerStore.Update(ctx, seller); err != nil {
		return nil, err
	}

	return seller, nil
}

// Delete implements SellerService.Delete.
// The store removes the seller and its books in one transaction.
func (s *SellerServiceImpl) Delete(ctx context.Context, current *domain.Seller, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	seller, err := s.sellerStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if current.ID != seller.ID {
		log.Debug("seller delete denied",
			slog.Int64("seller_id", id),
			slog.Int64("current_seller_id", current.ID))
		return ErrNotOwner
	}

	return s.sellerStore.Delete(ctx, id)
}
