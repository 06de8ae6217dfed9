// Package access decides, per navigation, whether the current session may see
// a route or must be redirected. Every function here is pure: guards read a
// session.Session and never mutate it.
package access

import "github.com/madhurinidan/clinic-web/internal/session"

// Role names a user role. Any string may be stored in a session; only these
// three are recognized.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"

	// RoleAny marks a protected route open to every authenticated user
	RoleAny Role = ""
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Decision is the outcome of a guard
type Decision struct {
	Allow    bool
	Redirect string
}

// Allowed lets the navigation proceed
func Allowed() Decision {
	return Decision{Allow: true}
}

// RedirectTo replaces the navigation with path
func RedirectTo(path string) Decision {
	return Decision{Redirect: path}
}

// RoleHomePath maps a role to its landing page. Unknown roles, including the
// empty string, land on "/".
func RoleHomePath(role string) string {
	switch Role(role) {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleDoctor:
		return "/doctor/dashboard"
	case RolePatient:
		return "/patient/dashboard"
	default:
		return HomePath
	}
}

// RequireRole guards protected content. Without a token the user goes to the
// login page; with the wrong role they go home silently.
func RequireRole(required Role, s session.Session) Decision {
	if !s.Authenticated() {
		return RedirectTo(LoginPath)
	}
	if required != RoleAny && Role(s.Role) != required {
		return RedirectTo(HomePath)
	}
	return Allowed()
}

// PublicOnly guards pages meant for anonymous users, sending signed-in users
// to their dashboard.
func PublicOnly(s session.Session) Decision {
	if !s.Authenticated() {
		return Allowed()
	}
	return RedirectTo(RoleHomePath(s.Role))
}
