package rbac

import "taskboard/internal/auth"

// RequirementKind is what a Rule demands of the caller.
type RequirementKind int

const (
	KindPublic RequirementKind = iota
	KindAuthenticated
	KindRole
)

func (k RequirementKind) String() string {
	switch k {
	case KindPublic:
		return "public"
	case KindAuthenticated:
		return "authenticated"
	case KindRole:
		return "role"
	default:
		return "unknown"
	}
}

type Requirement struct {
	Kind RequirementKind
	// Role is only meaningful for KindRole.
	Role auth.Role
}

func PermitAll() Requirement { return Requirement{Kind: KindPublic} }

func AnyAuthenticated() Requirement { return Requirement{Kind: KindAuthenticated} }

// HasRole is satisfied by callers holding the role's authority ("ROLE_" + role).
func HasRole(r auth.Role) Requirement { return Requirement{Kind: KindRole, Role: r} }

func (r Requirement) String() string {
	if r.Kind == KindRole {
		return "role:" + r.Role.String()
	}
	return r.Kind.String()
}
