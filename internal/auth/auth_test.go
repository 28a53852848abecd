package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)

	token, expiresAt, err := tm.GenerateToken("op-1", "Demo Agent")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "op-1", claims.OperatorID)
	assert.Equal(t, "Demo Agent", claims.Name)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 30).GenerateToken("op-1", "Demo Agent")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 30).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)
	_, err := tm.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestOperatorDirectoryAuthenticate(t *testing.T) {
	dir, err := NewOperatorDirectory(bcrypt.MinCost)
	require.NoError(t, err)

	op, ok := dir.Authenticate("agent@example.com", "password")
	require.True(t, ok)
	assert.Equal(t, "op-1", op.ID)

	// Email lookup is case-insensitive.
	op, ok = dir.Authenticate("  AGENT@example.COM ", "password")
	require.True(t, ok)
	assert.Equal(t, "op-1", op.ID)

	_, ok = dir.Authenticate("agent@example.com", "wrong")
	assert.False(t, ok)

	_, ok = dir.Authenticate("nobody@example.com", "password")
	assert.False(t, ok)
}

func TestOperatorDirectoryByID(t *testing.T) {
	dir, err := NewOperatorDirectory(bcrypt.MinCost)
	require.NoError(t, err)

	op, ok := dir.ByID("op-2")
	require.True(t, ok)
	assert.Equal(t, "admin@example.com", op.Email)

	_, ok = dir.ByID("op-99")
	assert.False(t, ok)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "s3cret"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
