package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/internal/access"
	"github.com/madhurinidan/clinic-web/internal/session"
	"github.com/madhurinidan/clinic-web/internal/views"
)

// Pages fills the parts of every page that come from the session and config
type Pages struct {
	GoogleClientID string
	// CookieDomain and SecureCookies apply to the flash cookie, matching the
	// session cookie's settings
	CookieDomain  string
	SecureCookies bool
}

func NewPages(googleClientID, cookieDomain string, secureCookies bool) *Pages {
	return &Pages{GoogleClientID: googleClientID, CookieDomain: cookieDomain, SecureCookies: secureCookies}
}

// render writes a full page. A flash left by a previous redirect is shown
// unless the handler set its own.
func (p *Pages) render(c *gin.Context, status int, name string, page views.Page) {
	page.Nav = NavFor(session.Current(c).Read())
	page.GoogleClientID = p.GoogleClientID
	if page.Flash == nil {
		page.Flash = p.takeFlash(c)
	}
	c.HTML(status, name, page)
}

// NavFor builds the navigation bar for a session
func NavFor(s session.Session) views.Nav {
	nav := views.Nav{
		Authenticated: s.Authenticated(),
		Name:          s.Name,
		Role:          s.Role,
		Links: []views.NavLink{
			{Label: "Home", Path: "/"},
			{Label: "About", Path: "/about"},
			{Label: "Doctors", Path: "/doctors"},
			{Label: "Contact", Path: "/contact"},
		},
	}
	if !nav.Authenticated {
		return nav
	}

	if s.Role == string(access.RolePatient) {
		nav.Links = append(nav.Links, views.NavLink{Label: "Book Appointment", Path: "/book"})
	}
	nav.Links = append(nav.Links, views.NavLink{Label: "Account", Path: "/account"})

	if home := access.RoleHomePath(s.Role); home != access.HomePath {
		nav.DashboardPath = home
		nav.DashboardName = dashboardName(s.Role)
	}
	return nav
}

func dashboardName(role string) string {
	switch access.Role(role) {
	case access.RoleAdmin:
		return "Admin Dashboard"
	case access.RoleDoctor:
		return "Doctor Dashboard"
	default:
		return "My Appointments"
	}
}
