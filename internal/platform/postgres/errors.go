// Package postgres implements the store interfaces against PostgreSQL
// using the pgx driver through database/sql.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation, such as a duplicate email address.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// isForeignKeyViolation checks if the given error is a PostgreSQL foreign
// key constraint violation, such as a book referencing a missing seller.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}
