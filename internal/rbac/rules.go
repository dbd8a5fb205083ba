package rbac

import (
	"fmt"
	"path"

	"taskboard/internal/auth"

	"github.com/bmatcuk/doublestar/v4"
)

// Rule binds a path pattern to a requirement. Patterns use doublestar syntax,
// so "/admin/**" covers every path below /admin.
type Rule struct {
	Pattern     string
	Requirement Requirement
}

// Decision is the outcome of evaluating a request path against a RuleSet.
type Decision int

const (
	Allow Decision = iota
	// DenyUnauthenticated means the path needs an identity and none was present.
	DenyUnauthenticated
	// DenyForbidden means an identity was present but lacks the required authority.
	DenyForbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "unauthenticated"
	case DenyForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// RuleSet is an ordered, immutable rule table. The first matching rule decides.
type RuleSet struct {
	rules []Rule
}

func NewRuleSet(rules ...Rule) (RuleSet, error) {
	out := make([]Rule, 0, len(rules))
	for i, r := range rules {
		if !doublestar.ValidatePattern(r.Pattern) {
			return RuleSet{}, fmt.Errorf("rule %d: invalid pattern %q", i, r.Pattern)
		}
		if r.Requirement.Kind == KindRole {
			if _, err := auth.ParseRole(r.Requirement.Role.String()); err != nil {
				return RuleSet{}, fmt.Errorf("rule %d: %w", i, err)
			}
		}
		out = append(out, r)
	}
	return RuleSet{rules: out}, nil
}

// DefaultRules is the service's static table: the auth endpoints are public,
// the admin area needs ADMIN, everything else needs any authenticated caller.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "/auth/**", Requirement: PermitAll()},
		{Pattern: "/admin/**", Requirement: HasRole(auth.RoleAdmin)},
		{Pattern: "/**", Requirement: AnyAuthenticated()},
	}
}

// MustDefault returns DefaultRules as a RuleSet. It panics only if the
// built-in table is invalid.
func MustDefault() RuleSet {
	rs, err := NewRuleSet(DefaultRules()...)
	if err != nil {
		panic(err)
	}
	return rs
}

func (rs RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Match returns the first rule whose pattern matches p.
func (rs RuleSet) Match(p string) (Rule, bool) {
	p = path.Clean("/" + p)
	for _, r := range rs.rules {
		if ok, _ := doublestar.Match(r.Pattern, p); ok {
			return r, true
		}
	}
	return Rule{}, false
}

// Evaluate decides whether the caller may reach p. principal is nil for
// anonymous requests. Paths no rule covers are denied.
func (rs RuleSet) Evaluate(p string, principal *auth.Principal) Decision {
	r, ok := rs.Match(p)
	if !ok {
		if principal == nil {
			return DenyUnauthenticated
		}
		return DenyForbidden
	}

	switch r.Requirement.Kind {
	case KindPublic:
		return Allow
	case KindAuthenticated:
		if principal == nil {
			return DenyUnauthenticated
		}
		return Allow
	case KindRole:
		if principal == nil {
			return DenyUnauthenticated
		}
		if !principal.HasAuthority(r.Requirement.Role.Authority()) {
			return DenyForbidden
		}
		return Allow
	default:
		return DenyForbidden
	}
}
