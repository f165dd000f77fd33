package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func TestRunInTransaction_BeginFailure(t *testing.T) {
	t.Parallel()

	// A closed pool makes BeginTx fail without ever dialing the database.
	db, err := sql.Open("pgx", "postgres://localhost:5432/none")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	ran := false
	err = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		ran = true
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransactionFailed)
	assert.False(t, ran)
}
