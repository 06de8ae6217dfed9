package access

import (
	"strings"

	"github.com/madhurinidan/clinic-web/internal/session"
)

// PolicyKind classifies a route
type PolicyKind int

const (
	KindPublic PolicyKind = iota
	KindPublicOnly
	KindProtected
)

func (k PolicyKind) String() string {
	switch k {
	case KindPublicOnly:
		return "public_only"
	case KindProtected:
		return "protected"
	default:
		return "public"
	}
}

// Policy is the access rule attached to a route
type Policy struct {
	Kind PolicyKind
	Role Role
}

var (
	Public           = Policy{Kind: KindPublic}
	PublicOnlyPolicy = Policy{Kind: KindPublicOnly}
)

// Protected requires an authenticated session, with role when non-empty
func Protected(role Role) Policy {
	return Policy{Kind: KindProtected, Role: role}
}

// Name labels the policy for metrics and logs
func (p Policy) Name() string {
	if p.Kind == KindProtected && p.Role != RoleAny {
		return p.Kind.String() + ":" + string(p.Role)
	}
	return p.Kind.String()
}

// Evaluate applies the policy to s
func (p Policy) Evaluate(s session.Session) Decision {
	switch p.Kind {
	case KindPublicOnly:
		return PublicOnly(s)
	case KindProtected:
		return RequireRole(p.Role, s)
	default:
		return Allowed()
	}
}

// Route binds a path (exact, or a prefix when Prefix is set) to a policy
type Route struct {
	Path   string
	Prefix bool
	Policy Policy
}

// Routes is the static route table. Dashboard sub-routes inherit the policy
// of their prefix.
var Routes = []Route{
	{Path: "/", Policy: Public},
	{Path: "/about", Policy: Public},
	{Path: "/doctors", Policy: Public},
	{Path: "/doctors/", Prefix: true, Policy: Public},
	{Path: "/contact", Policy: Public},
	{Path: "/logout", Policy: Public},
	{Path: "/login", Policy: PublicOnlyPolicy},
	{Path: "/register", Policy: PublicOnlyPolicy},
	{Path: "/auth/google", Policy: PublicOnlyPolicy},
	{Path: "/book", Policy: Protected(RolePatient)},
	{Path: "/account", Policy: Protected(RoleAny)},
	{Path: "/admin/", Prefix: true, Policy: Protected(RoleAdmin)},
	{Path: "/doctor/", Prefix: true, Policy: Protected(RoleDoctor)},
	{Path: "/patient/", Prefix: true, Policy: Protected(RolePatient)},
}

// Classify returns the policy for path. Exact entries win over prefixes and
// the longest prefix wins; unknown paths are public.
func Classify(path string) Policy {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}

	best := -1
	var policy Policy
	for _, route := range Routes {
		if !route.Prefix {
			if route.Path == path {
				return route.Policy
			}
			continue
		}
		if strings.HasPrefix(path, route.Path) && len(route.Path) > best {
			best = len(route.Path)
			policy = route.Policy
		}
	}
	if best >= 0 {
		return policy
	}
	return Public
}

// Decide classifies path and evaluates its policy against s
func Decide(path string, s session.Session) Decision {
	return Classify(path).Evaluate(s)
}
