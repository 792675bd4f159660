package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the subset of JWT claims the console surfaces for display.
// The token is issued and verified by the backend; this parse is unverified
// and strictly informational.
type TokenClaims struct {
	Subject   string
	Issuer    string
	ExpiresAt time.Time
}

// PeekClaims decodes the access token without signature verification.
// Returns false for anything that does not parse as a JWT.
func PeekClaims(token string) (TokenClaims, bool) {
	if token == "" {
		return TokenClaims{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, false
	}

	out := TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if iss, err := claims.GetIssuer(); err == nil {
		out.Issuer = iss
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, true
}

// Expired reports whether the claims carry an expiry in the past.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}
