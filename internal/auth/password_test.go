package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hasher := NewHasher(4) // minimum cost keeps the test fast

	digest, err := hasher.Hash("secret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, digest)
	assert.NotEqual(t, "secret-password", digest)

	assert.True(t, hasher.Verify("secret-password", digest))
	assert.False(t, hasher.Verify("wrong-password", digest))
}

func TestHashIsSalted(t *testing.T) {
	hasher := NewHasher(4)

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("same-password", first))
	assert.True(t, hasher.Verify("same-password", second))
}

func TestVerifyMalformedDigest(t *testing.T) {
	hasher := NewHasher(4)

	assert.False(t, hasher.Verify("anything", ""))
	assert.False(t, hasher.Verify("anything", "not-a-bcrypt-digest"))
}

func TestNewHasherClampsCost(t *testing.T) {
	// out-of-range costs must still produce a usable hasher
	hasher := NewHasher(99)
	digest, err := hasher.Hash("pw")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("pw", digest))
}
