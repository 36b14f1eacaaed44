package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifiesRoundtrip(t *testing.T) {
	digest, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("s3cret", digest))
	assert.False(t, VerifyPassword("wrong", digest))
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	first, err := HashPassword("s3cret")
	require.NoError(t, err)
	second, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each hash must use a fresh salt")
	assert.True(t, VerifyPassword("s3cret", first))
	assert.True(t, VerifyPassword("s3cret", second))
}

func TestHashPassword_Shape(t *testing.T) {
	digest, err := HashPassword("s3cret")
	require.NoError(t, err)

	salt, hash, found := strings.Cut(digest, ":")
	require.True(t, found)
	assert.Len(t, salt, saltBytes*2)
	assert.Len(t, hash, hashBytes*2)
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	cases := []string{
		"",
		"no-separator",
		":missingsalt",
		"missinghash:",
		":",
	}
	for _, stored := range cases {
		assert.False(t, VerifyPassword("anything", stored), "stored=%q", stored)
	}
}
