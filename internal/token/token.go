package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired indicates the token was valid but its expiry has passed.
	ErrExpired = errors.New("token expired")
	// ErrInvalid indicates the token is malformed, unsigned, or signed with
	// a different secret.
	ErrInvalid = errors.New("token invalid")
)

// DefaultTTL matches the legacy session length of roughly 100 hours.
const DefaultTTL = 100 * time.Hour

// Issue mints a signed bearer token carrying only the user id, expiring at
// now+ttl. Stateless: nothing is persisted.
func Issue(userID, secret string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the embedded user id.
// Pure: no storage lookup, any holder of the secret can verify.
func Verify(tokenString, secret string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}
