package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestJWTRoundTrip(t *testing.T) {
	signed, err := GenerateJWT("alice", "grant-1", "secret", time.Hour, "rates-test")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(signed, "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "grant-1", claims.ID)
	assert.Equal(t, "rates-test", claims.Issuer)
}

func TestParseAndValidateJWT_WrongSecret(t *testing.T) {
	signed, err := GenerateJWT("alice", "grant-1", "secret", time.Hour, "rates-test")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(signed, "other")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	signed, err := GenerateJWT("alice", "grant-1", "secret", -time.Minute, "rates-test")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(signed, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
