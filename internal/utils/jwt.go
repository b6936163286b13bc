package utils // package utils provides helpers for session tokens, hashing and pagination

import (
	"time" // time utilities for computing expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionClaims is the decoded, verified payload of a session token.  The
// subject registered claim carries the user ID; Role carries the user's
// role at issue time.  A role change after issuance does not affect tokens
// that are already in circulation.
type SessionClaims struct {
	Role string `json:"role"` // STUDENT | TEACHER | ADMIN
	jwt.RegisteredClaims
}

// SessionToken represents a signed JWT session token along with its expiry.
// The Token field contains the serialized JWT string.  Exp stores the
// expiration timestamp.  The same token is returned in the login response
// body and set as an HTTP-only cookie.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID, the user's role, the issue time and a
// validity window.  The signature covers the whole claim set, so altering
// any field invalidates the token.  The secret is injected rather than read
// from ambient state so tests can use distinct keys.
func NewSessionToken(secret, userID, role string, now time.Time, ttl time.Duration) (SessionToken, error) {
	exp := now.UTC().Add(ttl)
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now.UTC()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies the signature and expiry of a session token
// and returns its claims.  Tokens signed with a different algorithm, a
// different key, or whose expiry has passed relative to now are rejected.
func ParseSessionToken(secret, raw string, now time.Time) (*SessionClaims, error) {
	tok, err := jwt.ParseWithClaims(raw, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens that do not use HMAC signing.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*SessionClaims)
	if !ok || !tok.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
