package token

import (
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSecret(t *testing.T) string {
	t.Helper()
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	require.NoError(t, err)
	return base64.URLEncoding.EncodeToString(bytes)
}

func TestJwtService(t *testing.T) {
	secretKey := randomSecret(t)
	issuer := "mazeshare-test"
	svc := NewJwtService(secretKey, issuer)

	t.Run("Generate and Decode session token", func(t *testing.T) {
		claims := map[string]interface{}{
			"sid": "0b6ad5b4-6e9e-4b4f-9a51-03c9d3f3b8a1",
		}

		token, err := svc.Generate(claims, 5*time.Minute)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		decoded, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, claims["sid"], decoded["sid"])
		assert.Equal(t, issuer, decoded["iss"])
	})

	t.Run("Decode invalid token", func(t *testing.T) {
		_, err := svc.Decode("invalidTokenString")
		assert.Error(t, err)
	})

	t.Run("Decode expired token", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{"sid": "x"}, -time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Expiry follows the service clock", func(t *testing.T) {
		now := time.Date(2025, 2, 19, 12, 0, 0, 0, time.UTC)
		clocked := NewJwtServiceWithClock(secretKey, issuer, func() time.Time { return now })
		token, err := clocked.Generate(map[string]interface{}{"sid": "x"}, time.Minute)
		require.NoError(t, err)

		now = now.Add(59 * time.Second)
		_, err = clocked.Decode(token)
		require.NoError(t, err)

		now = now.Add(2 * time.Second)
		_, err = clocked.Decode(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Token without expiry is rejected", func(t *testing.T) {
		bare := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"iss": issuer})
		token, err := bare.SignedString([]byte(secretKey))
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Issuer cannot be overridden by claims", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{"iss": "someone-else"}, time.Minute)
		require.NoError(t, err)

		decoded, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, issuer, decoded["iss"])
	})

	t.Run("Reject token from another issuer", func(t *testing.T) {
		other := NewJwtService(secretKey, "other-service")
		token, err := other.Generate(map[string]interface{}{"sid": "x"}, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrWrongIssuer)
	})

	t.Run("Reject token signed with another secret", func(t *testing.T) {
		other := NewJwtService(randomSecret(t), issuer)
		token, err := other.Generate(map[string]interface{}{"sid": "x"}, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})

	t.Run("Reject unsigned token", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"iss": issuer})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})
}
