package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier turns a raw bearer token into verified claims.
// Errors wrap one of ErrTokenExpired, ErrTokenMalformed, ErrTokenUnsupported or ErrTokenInternal.
type TokenVerifier interface {
	Verify(token string) (Claims, error)
}

// Verifier checks HS256 tokens against a shared secret.
// It holds no mutable state and is safe for concurrent use.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
	leeway   time.Duration
	now      func() time.Time
}

type VerifierOption func(*Verifier)

// WithClock overrides the time source used for exp/nbf/iat checks.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) { v.now = now }
}

func NewVerifier(cfg config.AuthConfig, opts ...VerifierOption) (*Verifier, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	v := &Verifier{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		leeway:   cfg.Leeway,
		now:      time.Now,
	}
	for _, o := range opts {
		o(v)
	}
	return v, nil
}

func (v *Verifier) Verify(token string) (Claims, error) {
	var claims Claims

	opts := []jwt.ParserOption{
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if v.leeway > 0 {
		opts = append(opts, jwt.WithLeeway(v.leeway))
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	if _, err := jwt.NewParser(opts...).ParseWithClaims(token, &claims, v.key); err != nil {
		return Claims{}, classify(err)
	}
	return claims, nil
}

// key rejects anything but an HS256 JWT before the signature is checked.
// The parser reports keyfunc failures as ErrTokenUnverifiable.
func (v *Verifier) key(t *jwt.Token) (any, error) {
	if typ, ok := t.Header["typ"]; ok {
		if s, _ := typ.(string); !strings.EqualFold(s, "JWT") {
			return nil, fmt.Errorf("token type %v not accepted", typ)
		}
	}
	if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("signing method %v not accepted", t.Header["alg"])
	}
	return v.secret, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrTokenUnsupported, err)
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenInternal, err)
	}
}
