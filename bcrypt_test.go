package members_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	members "github.com/clubware/go-members"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes a password", func(t *testing.T) {
		hash, err := members.HashPassword("secret123")
		require.NoError(t, err)

		assert.NotEqual(t, "secret123", hash)
		assert.True(t, strings.HasPrefix(hash, "$2a$"))
	})

	t.Run("salted hashes differ between calls", func(t *testing.T) {
		first, err := members.HashPassword("secret123")
		require.NoError(t, err)

		second, err := members.HashPassword("secret123")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		_, err := members.HashPassword("")
		assert.Error(t, err)
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := members.HashPassword("secret123")
	require.NoError(t, err)

	t.Run("accepts the matching password", func(t *testing.T) {
		assert.NoError(t, members.ComparePasswordAndHash("secret123", hash))
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		err := members.ComparePasswordAndHash("not-the-password", hash)
		assert.ErrorIs(t, err, members.ErrInvalidCredentials)
	})

	t.Run("rejects a garbage hash", func(t *testing.T) {
		err := members.ComparePasswordAndHash("secret123", "not-a-bcrypt-hash")
		assert.Error(t, err)
	})
}
