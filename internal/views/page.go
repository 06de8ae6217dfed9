package views

// Flash kinds
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is an inline status message
type Flash struct {
	Kind    string
	Message string
}

// NavLink is a navigation entry
type NavLink struct {
	Label string
	Path  string
}

// Nav describes the navigation bar for the current session
type Nav struct {
	Authenticated bool
	Name          string
	Role          string
	DashboardPath string
	DashboardName string
	Links         []NavLink
}

// Page is the data every template receives
type Page struct {
	Title          string
	Nav            Nav
	Flash          *Flash
	FieldErrors    map[string]string
	GoogleClientID string
	Data           any
}
