package auth

import (
	"context"
	"errors"
	"slices"
)

type ctxKey int

const ctxPrincipal ctxKey = iota

// Principal is what the authenticator attaches to a request context:
// the caller's identity and the authorities derived from it.
type Principal struct {
	Identity    Identity
	Authorities []string
}

// NewPrincipal derives the authority list for id. Each identity carries exactly
// one authority, its role's.
func NewPrincipal(id Identity) Principal {
	return Principal{Identity: id, Authorities: []string{id.Role.Authority()}}
}

// HasAuthority reports whether p was granted authority a.
func (p Principal) HasAuthority(a string) bool {
	return slices.Contains(p.Authorities, a)
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}

// WithIdentity is shorthand for WithPrincipal(ctx, NewPrincipal(id)).
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return WithPrincipal(ctx, NewPrincipal(id))
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxPrincipal).(Principal)
	return p, ok
}

func IdentityFrom(ctx context.Context) (Identity, error) {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return Identity{}, errors.New("identity not in context")
	}
	return p.Identity, nil
}

func UserID(ctx context.Context) (int64, error) {
	id, err := IdentityFrom(ctx)
	if err != nil {
		return 0, err
	}
	return id.UserID, nil
}
