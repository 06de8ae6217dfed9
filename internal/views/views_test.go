package views

import (
	"io/fs"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pageNames = []string{
	"home", "about", "doctors", "doctor_profile", "contact", "login", "register", "book",
	"account", "admin_dashboard", "doctor_dashboard", "patient_dashboard", "not_found",
}

func TestNew_ParsesEveryPage(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)

	for _, name := range pageNames {
		assert.True(t, r.Has(name), name)
	}
	assert.False(t, r.Has("layout"))
}

func TestInstance_UnknownPageFallsBackToNotFound(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, r.Instance("missing", Page{}).Render(w))
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestLayout_NavAndFlash(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)

	page := Page{
		Title: "About Us",
		Nav: Nav{
			Authenticated: true,
			DashboardPath: "/admin/dashboard",
			DashboardName: "Admin Dashboard",
			Links:         []NavLink{{Label: "Home", Path: "/"}},
		},
		Flash: &Flash{Kind: FlashError, Message: "Failed to <load>"},
	}

	w := httptest.NewRecorder()
	require.NoError(t, r.Instance("about", page).Render(w))
	body := w.Body.String()

	assert.Contains(t, body, "<title>About Us | Madhuri Nidan Kendra</title>")
	assert.Contains(t, body, `href="/admin/dashboard"`)
	assert.Contains(t, body, `action="/logout"`)
	assert.Contains(t, body, "Failed to &lt;load&gt;")
	assert.NotContains(t, body, `href="/register"`)
}

func TestFuncs(t *testing.T) {
	at := time.Date(2030, 3, 10, 14, 5, 0, 0, time.UTC)
	funcs := funcMap(time.UTC)

	assert.Equal(t, "10 Mar 2030", funcs["date"].(func(time.Time) string)(at))
	assert.Equal(t, "02:05 PM", funcs["clock"].(func(time.Time) string)(at))
	assert.Equal(t, "", funcs["datetime"].(func(time.Time) string)(time.Time{}))
	assert.Equal(t, "N/A", funcs["orDefault"].(func(string, string) string)("N/A", ""))
	assert.Equal(t, 3, funcs["add"].(func(int, int) int)(1, 2))
}

func TestFuncs_FormatInClinicZone(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	funcs := funcMap(kolkata)

	// 04:30 UTC is 10:00 in Kolkata
	at := time.Date(2030, 1, 15, 4, 30, 0, 0, time.UTC)
	assert.Equal(t, "10:00 AM", funcs["clock"].(func(time.Time) string)(at))
	assert.Equal(t, "15 Jan 2030, 10:00 AM", funcs["datetime"].(func(time.Time) string)(at))

	// late evening UTC rolls over to the next clinic day
	late := time.Date(2030, 1, 15, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "16 Jan 2030", funcs["date"].(func(time.Time) string)(late))
}

func TestPatientDashboard_ShowsClinicLocalTime(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	r, err := New(kolkata)
	require.NoError(t, err)

	booked := time.Date(2030, 1, 15, 10, 0, 0, 0, kolkata)
	page := Page{
		Title: "My Appointments",
		Data: struct{ Appointments []models.Appointment }{
			Appointments: []models.Appointment{{ID: "a1", Date: booked.UTC()}},
		},
	}

	w := httptest.NewRecorder()
	require.NoError(t, r.Instance("patient_dashboard", page).Render(w))
	body := w.Body.String()

	assert.Contains(t, body, "15 Jan 2030")
	assert.Contains(t, body, "10:00 AM")
	assert.NotContains(t, body, "04:30 AM")
}

func TestStatic(t *testing.T) {
	_, err := fs.Stat(Static(), "site.css")
	assert.NoError(t, err)
}
