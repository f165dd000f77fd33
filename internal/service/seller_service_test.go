package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazantsev/bookmart-api/internal/domain"
	"github.com/mkazantsev/bookmart-api/internal/service/auth"
	"github.com/mkazantsev/bookmart-api/internal/store"
	"github.com/mkazantsev/bookmart-api/internal/testutils"
)

func newSellerServiceForTest(t *testing.T) (*SellerServiceImpl, *BookServiceImpl, *testutils.MemStore) {
	t.Helper()
	m := testutils.NewMemStore()
	hasher := auth.NewBcryptHasher()
	sellers := NewSellerService(m.SellerStore(), m.BookStore(), hasher, nil)
	books := NewBookService(m.BookStore(), nil)
	return sellers, books, m
}

func registerSeller(t *testing.T, svc SellerService, email string) *domain.Seller {
	t.Helper()
	seller, err := svc.Register(context.Background(), "Ivan", "Petrov", email, "secret-password")
	require.NoError(t, err)
	return seller
}

func TestSellerService_Register(t *testing.T) {
	t.Parallel()

	t.Run("hashes the password before storage", func(t *testing.T) {
		t.Parallel()
		svc, _, m := newSellerServiceForTest(t)

		seller, err := svc.Register(context.Background(), "Anna", "Orlova", "anna@example.com", "secret-password")
		require.NoError(t, err)
		require.NotZero(t, seller.ID)

		stored := m.Sellers[seller.ID]
		require.NotNil(t, stored)
		assert.NotEqual(t, "secret-password", stored.HashedPassword)
		assert.NoError(t, auth.NewBcryptHasher().Compare(stored.HashedPassword, "secret-password"))
	})

	t.Run("duplicate email conflicts and leaves one seller", func(t *testing.T) {
		t.Parallel()
		svc, _, m := newSellerServiceForTest(t)

		registerSeller(t, svc, "dup@example.com")
		_, err := svc.Register(context.Background(), "Other", "Person", "dup@example.com", "another-password")
		require.ErrorIs(t, err, store.ErrEmailExists)

		count := 0
		for _, s := range m.Sellers {
			if s.Email == "dup@example.com" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestSellerService_Authenticate(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSellerServiceForTest(t)
	registered := registerSeller(t, svc, "login@example.com")

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		seller, err := svc.Authenticate(context.Background(), "login@example.com", "secret-password")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, seller.ID)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		t.Parallel()
		_, wrongPassErr := svc.Authenticate(context.Background(), "login@example.com", "wrong-password")
		_, unknownErr := svc.Authenticate(context.Background(), "nobody@example.com", "secret-password")

		require.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
		require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		// Uniform failure: nothing distinguishes the two cases.
		assert.Equal(t, wrongPassErr.Error(), unknownErr.Error())
	})
}

func TestSellerService_Update(t *testing.T) {
	t.Parallel()

	t.Run("owner can update own profile", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newSellerServiceForTest(t)
		seller := registerSeller(t, svc, "owner@example.com")

		newFirst := "Renamed"
		updated, err := svc.Update(context.Background(), seller, seller.ID, domain.SellerUpdate{
			FirstName: &newFirst,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.FirstName)
		assert.Equal(t, "Petrov", updated.LastName)
		assert.Equal(t, "owner@example.com", updated.Email)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		svc, _, m := newSellerServiceForTest(t)
		target := registerSeller(t, svc, "target@example.com")
		other, err := svc.Register(context.Background(), "Eve", "Intruder", "eve@example.com", "secret-password")
		require.NoError(t, err)

		newFirst := "Hacked"
		_, err = svc.Update(context.Background(), other, target.ID, domain.SellerUpdate{
			FirstName: &newFirst,
		})
		require.ErrorIs(t, err, ErrNotOwner)
		assert.Equal(t, "Ivan", m.Sellers[target.ID].FirstName)
	})

	t.Run("missing seller is not found", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newSellerServiceForTest(t)
		seller := registerSeller(t, svc, "any@example.com")

		_, err := svc.Update(context.Background(), seller, 9999, domain.SellerUpdate{})
		require.ErrorIs(t, err, store.ErrSellerNotFound)
	})
}

func TestSellerService_Delete(t *testing.T) {
	t.Parallel()

	t.Run("cascades to owned books", func(t *testing.T) {
		t.Parallel()
		sellers, books, m := newSellerServiceForTest(t)
		seller := registerSeller(t, sellers, "cascade@example.com")

		for i := 0; i < 3; i++ {
			_, err := books.Create(context.Background(), seller, BookFields{
				Title:  "Dead Souls",
				Author: "Gogol",
				Year:   1842,
				Pages:  352,
			})
			require.NoError(t, err)
		}
		require.Len(t, m.Books, 3)

		require.NoError(t, sellers.Delete(context.Background(), seller, seller.ID))

		// Both sides gone, no orphans.
		assert.NotContains(t, m.Sellers, seller.ID)
		assert.Empty(t, m.Books)
	})

	t.Run("non-owner is forbidden and nothing is deleted", func(t *testing.T) {
		t.Parallel()
		sellers, books, m := newSellerServiceForTest(t)
		target := registerSeller(t, sellers, "victim@example.com")
		other := registerSeller(t, sellers, "other@example.com")

		_, err := books.Create(context.Background(), target, BookFields{
			Title:  "Oblomov",
			Author: "Goncharov",
			Year:   1859,
			Pages:  480,
		})
		require.NoError(t, err)

		require.ErrorIs(t, sellers.Delete(context.Background(), other, target.ID), ErrNotOwner)
		assert.Contains(t, m.Sellers, target.ID)
		assert.Len(t, m.Books, 1)
	})
}

func TestSellerService_GetDetail(t *testing.T) {
	t.Parallel()

	sellers, books, _ := newSellerServiceForTest(t)
	seller := registerSeller(t, sellers, "detail@example.com")

	created, err := books.Create(context.Background(), seller, BookFields{
		Title:  "The Master and Margarita",
		Author: "Bulgakov",
		Year:   1967,
		Pages:  384,
	})
	require.NoError(t, err)

	got, ownedBooks, err := sellers.GetDetail(context.Background(), seller.ID)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, got.ID)
	require.Len(t, ownedBooks, 1)
	assert.Equal(t, created.ID, ownedBooks[0].ID)

	_, _, err = sellers.GetDetail(context.Background(), 9999)
	require.ErrorIs(t, err, store.ErrSellerNotFound)
}
