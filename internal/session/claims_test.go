package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestPeekClaims(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"iss": "storehub",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("whatever"))
	require.NoError(t, err)

	claims, ok := PeekClaims(signed)
	require.True(t, ok)
	require.Equal(t, "u1", claims.Subject)
	require.Equal(t, "storehub", claims.Issuer)
	require.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
	require.False(t, claims.Expired(time.Now()))
	require.True(t, claims.Expired(exp.Add(time.Minute)))
}

func TestPeekClaimsRejectsOpaqueTokens(t *testing.T) {
	if _, ok := PeekClaims("not-a-jwt"); ok {
		t.Fatal("opaque token should not parse")
	}
	if _, ok := PeekClaims(""); ok {
		t.Fatal("empty token should not parse")
	}
}
