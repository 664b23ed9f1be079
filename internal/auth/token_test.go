package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clmarcel/pokedex-api/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret")

	token, err := m.Issue("64f000000000000000000001", "admin")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "64f000000000000000000001", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").Issue("64f000000000000000000001", "user")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b").Verify(token)
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	secret := "test-secret"
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "64f000000000000000000001",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
		},
	})
	tokenString, err := expired.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewTokenManager(secret).Verify(tokenString)
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("test-secret").Verify("not.a.token")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}
