package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	require.True(t, CheckPasswordHash("correct horse battery staple", hash))
	require.False(t, CheckPasswordHash("wrong password", hash))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	// bcrypt embeds a per-record salt, so two hashes of the same input differ.
	require.NotEqual(t, first, second)
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, "admin-123", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	require.Equal(t, "admin-123", claims.AdminID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "admin-123", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken([]byte("other-secret"), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(testSecret, "admin-123", time.Nanosecond)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
