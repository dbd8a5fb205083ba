package auth

import (
	"fmt"
	"strconv"
	"strings"
)

// Role names. Keep these stable; they are part of the token contract.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// AuthorityPrefix is prepended to a role name to form its granted authority.
const AuthorityPrefix = "ROLE_"

// ParseRole maps a claim value to a known Role. Matching is exact.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidIdentity, s)
	}
}

func (r Role) String() string { return string(r) }

// Authority returns the single authority granted to holders of r, e.g. "ROLE_ADMIN".
func (r Role) Authority() string { return AuthorityPrefix + string(r) }

// Identity is the authenticated caller of a single request.
type Identity struct {
	UserID      int64  `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}

// IdentityFromClaims builds an Identity from verified claims.
// A non-integer subject or an unknown role yields ErrInvalidIdentity.
func IdentityFromClaims(c Claims) (Identity, error) {
	sub := strings.TrimSpace(c.Subject)
	if sub == "" {
		return Identity{}, fmt.Errorf("%w: subject missing", ErrInvalidIdentity)
	}
	uid, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: subject %q is not a user id: %w", ErrInvalidIdentity, sub, err)
	}
	role, err := ParseRole(c.UserRole)
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		UserID:      uid,
		Email:       c.Email,
		DisplayName: c.Nickname,
		Role:        role,
	}, nil
}
