package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a seller with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrTransactionFailed is returned when a database transaction fails
	// to begin or commit. Errors from the operation inside the transaction
	// pass through unchanged.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrSellerNotFound indicates that the requested seller does not exist in the store.
	ErrSellerNotFound = fmt.Errorf("%w: seller", ErrNotFound)

	// ErrBookNotFound indicates that the requested book does not exist in the store.
	ErrBookNotFound = fmt.Errorf("%w: book", ErrNotFound)

	// ErrEmailExists indicates that a seller with the given email already exists.
	// This is returned when a unique-constraint violation is reported by the
	// database, never from a pre-check, so the check-then-insert race cannot occur.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
