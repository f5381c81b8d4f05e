package token_test

import (
	"testing"
	"time"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
	"github.com/Abaaza/wallmastersbackend/internal/token"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	accessSecret  = []byte("access-secret-at-least-32-chars!!!!")
	refreshSecret = []byte("refresh-secret-at-least-32-chars!!!")
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	svc := token.NewService(accessSecret, refreshSecret)

	raw, err := svc.IssueAccessToken("user-1")
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestIssue_TokensAreUnique(t *testing.T) {
	svc := token.NewService(accessSecret, refreshSecret)

	// Back-to-back issuance lands in the same second, so iat/exp are equal.
	// The jti claim must still make the tokens distinct, otherwise rotation
	// would overwrite a stored refresh token with an identical one.
	first, err := svc.IssueRefreshToken("user-1")
	require.NoError(t, err)
	second, err := svc.IssueRefreshToken("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	a1, err := svc.IssueAccessToken("user-1")
	require.NoError(t, err)
	a2, err := svc.IssueAccessToken("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, a1, a2)
}

func TestVerify_SecretsAreNotInterchangeable(t *testing.T) {
	svc := token.NewService(accessSecret, refreshSecret)

	access, err := svc.IssueAccessToken("user-1")
	require.NoError(t, err)
	refresh, err := svc.IssueRefreshToken("user-1")
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = svc.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerify_ExpiredToken(t *testing.T) {
	svc := token.NewService(accessSecret, refreshSecret)

	// Sign an already-expired token with the right secret.
	claims := token.Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(accessSecret)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(raw)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerify_GarbageToken(t *testing.T) {
	svc := token.NewService(accessSecret, refreshSecret)

	_, err := svc.VerifyAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerify_MissingUserID(t *testing.T) {
	svc := token.NewService(accessSecret, refreshSecret)

	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(accessSecret)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(raw)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
