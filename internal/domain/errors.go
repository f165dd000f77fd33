// Package domain defines the core business entities and errors.
package domain

import "errors"

// ErrInvalidID is returned when an ID is malformed or not positive.
var ErrInvalidID = errors.New("invalid ID")
