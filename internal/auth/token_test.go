package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 10)

	token, expiresAt, err := tm.GenerateToken("s1", domain.UserRoleSupport)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "s1", claims.SubjectID)
	require.Equal(t, domain.UserRoleSupport, claims.Role)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	token, _, err := NewTokenManager("other", 10).GenerateToken("c1", domain.UserRoleClient)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", 10).ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	claims := &Claims{
		SubjectID: "c1",
		Role:      domain.UserRoleClient,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", 10).ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRequiresSubject(t *testing.T) {
	token, _, err := NewTokenManager("secret", 10).GenerateToken("", domain.UserRoleClient)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", 10).ParseToken(token)
	require.Error(t, err)
}
