package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()

	t.Run("hash verifies against original password", func(t *testing.T) {
		t.Parallel()
		hash, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)
		require.NotEmpty(t, hash)

		assert.NoError(t, hasher.Compare(hash, "correct horse battery staple"))
	})

	t.Run("hash never equals the password", func(t *testing.T) {
		t.Parallel()
		password := "plaintext-password"
		hash, err := hasher.Hash(password)
		require.NoError(t, err)

		assert.NotEqual(t, password, hash)
	})

	t.Run("same password hashes differently each time", func(t *testing.T) {
		t.Parallel()
		first, err := hasher.Hash("repeatable")
		require.NoError(t, err)
		second, err := hasher.Hash("repeatable")
		require.NoError(t, err)

		// Salted: bytes differ but both verify.
		assert.NotEqual(t, first, second)
		assert.NoError(t, hasher.Compare(first, "repeatable"))
		assert.NoError(t, hasher.Compare(second, "repeatable"))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		t.Parallel()
		hash, err := hasher.Hash("right password")
		require.NoError(t, err)

		assert.Error(t, hasher.Compare(hash, "wrong password"))
	})

	t.Run("malformed hash fails without panicking", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, hasher.Compare("not-a-bcrypt-hash", "anything"))
		assert.Error(t, hasher.Compare("", "anything"))
	})
}
