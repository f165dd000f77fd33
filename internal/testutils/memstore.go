// Package testutils provides in-memory store implementations shared by
// service and API tests.
package testutils

import (
	"context"
	"sync"

	"github.com/mkazantsev/bookmart-api/internal/domain"
	"github.com/mkazantsev/bookmart-api/internal/store"
)

// MemStore is an in-memory implementation of both store interfaces.
// Seller deletion removes the seller's books in the same locked section,
// mirroring the transactional cascade of the postgres store.
type MemStore struct {
	mu           sync.Mutex
	Sellers      map[int64]*domain.Seller
	Books        map[int64]*domain.Book
	nextSellerID int64
	nextBookID   int64
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		Sellers:      make(map[int64]*domain.Seller),
		Books:        make(map[int64]*domain.Book),
		nextSellerID: 1,
		nextBookID:   1,
	}
}

// SellerStore returns a store.SellerStore view of the MemStore.
func (m *MemStore) SellerStore() store.SellerStore { return &memSellerStore{m} }

// BookStore returns a store.BookStore view of the MemStore.
func (m *MemStore) BookStore() store.BookStore { return &memBookStore{m} }

// SellerCount returns the number of stored sellers.
func (m *MemStore) SellerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sellers)
}

// BookCount returns the number of stored books.
func (m *MemStore) BookCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Books)
}

type memSellerStore struct{ m *MemStore }
type memBookStore struct{ m *MemStore }

var (
	_ store.SellerStore = (*memSellerStore)(nil)
	_ store.BookStore   = (*memBookStore)(nil)
)

func (s *memSellerStore) Create(ctx context.Context, seller *domain.Seller) error {
	if err := seller.Validate(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, existing := range s.m.Sellers {
		if existing.Email == seller.Email {
			return store.ErrEmailExists
		}
	}
	seller.ID = s.m.nextSellerID
	s.m.nextSellerID++
	copied := *seller
	s.m.Sellers[seller.ID] = &copied
	return nil
}

func (s *memSellerStore) GetByID(ctx context.Context, id int64) (*domain.Seller, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	seller, ok := s.m.Sellers[id]
	if !ok {
		return nil, store.ErrSellerNotFound
	}
	copied := *seller
	return &copied, nil
}

func (s *memSellerStore) GetByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, seller := range s.m.Sellers {
		if seller.Email == email {
			copied := *seller
			return &copied, nil
		}
	}
	return nil, store.ErrSellerNotFound
}

func (s *memSellerStore) List(ctx context.Context) ([]*domain.Seller, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := []*domain.Seller{}
	for _, seller := range s.m.Sellers {
		copied := *seller
		out = append(out, &copied)
	}
	return out, nil
}

func (s *memSellerStore) Update(ctx context.Context, seller *domain.Seller) error {
	if err := seller.Validate(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.Sellers[seller.ID]; !ok {
		return store.ErrSellerNotFound
	}
	for id, existing := range s.m.Sellers {
		if id != seller.ID && existing.Email == seller.Email {
			return store.ErrEmailExists
		}
	}
	copied := *seller
	s.m.Sellers[seller.ID] = &copied
	return nil
}

func (s *memSellerStore) Delete(ctx context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.Sellers[id]; !ok {
		return store.ErrSellerNotFound
	}
	for bookID, book := range s.m.Books {
		if book.SellerID == id {
			delete(s.m.Books, bookID)
		}
	}
	delete(s.m.Sellers, id)
	return nil
}

func (s *memBookStore) Create(ctx context.Context, book *domain.Book) error {
	if err := book.Validate(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	book.ID = s.m.nextBookID
	s.m.nextBookID++
	copied := *book
	s.m.Books[book.ID] = &copied
	return nil
}

func (s *memBookStore) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	book, ok := s.m.Books[id]
	if !ok {
		return nil, store.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (s *memBookStore) List(ctx context.Context) ([]*domain.Book, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := []*domain.Book{}
	for _, book := range s.m.Books {
		copied := *book
		out = append(out, &copied)
	}
	return out, nil
}

func (s *memBookStore) ListBySeller(ctx context.Context, sellerID int64) ([]*domain.Book, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := []*domain.Book{}
	for _, book := range s.m.Books {
		if book.SellerID == sellerID {
			copied := *book
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memBookStore) Update(ctx context.Context, book *domain.Book) error {
	if err := book.Validate(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.Books[book.ID]; !ok {
		return store.ErrBookNotFound
	}
	copied := *book
	s.m.Books[book.ID] = &copied
	return nil
}

func (s *memBookStore) Delete(ctx context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.Books[id]; !ok {
		return store.ErrBookNotFound
	}
	delete(s.m.Books, id)
	return nil
}
