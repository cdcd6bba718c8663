package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateToken("user-1", "ana", "ana@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, time.Hour, m.GetTokenDuration())
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)

	refresh, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = m.ValidateToken(refresh)
	require.ErrorIs(t, err, ErrWrongTokenType)

	claims, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestTokenRejectedWithOtherSecret(t *testing.T) {
	token, err := NewJWTManager("secret", time.Hour, time.Hour).GenerateToken("u", "n", "e")
	require.NoError(t, err)

	_, err = NewJWTManager("other", time.Hour, time.Hour).ValidateToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	m := NewJWTManager("secret", time.Minute, time.Minute)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := m.GenerateToken("u", "n", "e")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
