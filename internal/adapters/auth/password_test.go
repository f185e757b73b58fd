package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, 64)

	hash, err := h.Hash(salt, "secret")
	require.NoError(t, err)

	require.NoError(t, h.Compare(hash, salt, "secret"))
	assert.Error(t, h.Compare(hash, salt, "wrong"))
	assert.Error(t, h.Compare(hash, "othersalt", "secret"))
}

func TestBcryptHasher_SaltsAreUnique(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.GenerateSalt()
	require.NoError(t, err)
	b, err := h.GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
