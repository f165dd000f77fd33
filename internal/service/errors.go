// Package service implements the application's business operations:
// registration, login, and ownership-guarded seller/book lifecycle.
package service

import "errors"

// Common service errors.
var (
	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password is wrong. The two cases are deliberately
	// indistinguishable so accounts cannot be enumerated.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotOwner is returned when an authenticated seller attempts to
	// mutate a resource owned by a different seller.
	ErrNotOwner = errors.New("seller does not own this resource")
)
