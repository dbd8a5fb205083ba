// Package authtest signs tokens for tests. The service itself only verifies.
package authtest

import (
	"testing"
	"time"

	"taskboard/internal/auth"

	"github.com/golang-jwt/jwt/v5"
)

const Secret = "test-secret-0123456789-abcdefghij"

// Claims returns claims issued at now and expiring after ttl.
func Claims(sub, email, nickname, role string, now time.Time, ttl time.Duration) auth.Claims {
	return auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:    email,
		Nickname: nickname,
		UserRole: role,
	}
}

// Sign signs c with HS256 and secret.
func Sign(tb testing.TB, secret string, c auth.Claims) string {
	tb.Helper()
	return SignWith(tb, jwt.SigningMethodHS256, []byte(secret), c)
}

// SignWith signs c with an arbitrary method and key.
func SignWith(tb testing.TB, method jwt.SigningMethod, key any, c auth.Claims) string {
	tb.Helper()
	s, err := jwt.NewWithClaims(method, c).SignedString(key)
	if err != nil {
		tb.Fatalf("sign token: %v", err)
	}
	return s
}

// SignMap signs raw claims with HS256, for claim shapes auth.Claims cannot express.
func SignMap(tb testing.TB, secret string, c jwt.MapClaims) string {
	tb.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	if err != nil {
		tb.Fatalf("sign token: %v", err)
	}
	return s
}

// Bearer formats an Authorization header value.
func Bearer(token string) string { return "Bearer " + token }
