package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(0)

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, hasher.Compare(hash, "correct horse battery staple"))
	assert.Error(t, hasher.Compare(hash, "wrong password"))
}

func TestBcryptHasher_HashesDiffer(t *testing.T) {
	hasher := NewBcryptHasher(0)

	h1, err := hasher.Hash("same input")
	require.NoError(t, err)
	h2, err := hasher.Hash("same input")
	require.NoError(t, err)

	// bcrypt embeds a random salt, so two hashes of the same input differ
	assert.NotEqual(t, h1, h2)
	assert.NoError(t, hasher.Compare(h1, "same input"))
	assert.NoError(t, hasher.Compare(h2, "same input"))
}

func TestBcryptHasher_CompareInvalidHash(t *testing.T) {
	hasher := NewBcryptHasher(0)
	assert.Error(t, hasher.Compare("not-a-bcrypt-hash", "anything"))
}
