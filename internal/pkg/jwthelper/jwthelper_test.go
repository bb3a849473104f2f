package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, 42, "org@example.com", "ORGANIZATION")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.AccountID)
	assert.Equal(t, "org@example.com", claims.Subject)
	assert.Equal(t, "ORGANIZATION", claims.Role)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken([]byte("key-one"), 42, "org@example.com", "ORGANIZATION")
	require.NoError(t, err)

	_, err = ParseToken([]byte("key-two"), token)

	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken([]byte("key"), "not.a.token")

	assert.Error(t, err)
}
