package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	uniqueErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "sellers_email_key"}

	assert.True(t, isUniqueViolation(uniqueErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert failed: %w", uniqueErr)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.False(t, isUniqueViolation(errors.New("some other failure")))
	assert.False(t, isUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	fkErr := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "books_seller_id_fkey"}

	assert.True(t, isForeignKeyViolation(fkErr))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("insert failed: %w", fkErr)))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, isForeignKeyViolation(nil))
}
