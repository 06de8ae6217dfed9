package access

import (
	"testing"

	"github.com/madhurinidan/clinic-web/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		required Role
		session  session.Session
		want     Decision
	}{
		{"anonymous", RoleAdmin, session.Session{}, RedirectTo("/login")},
		{"anonymous any role", RoleAny, session.Session{}, RedirectTo("/login")},
		{"role without token", RoleAdmin, session.Session{Role: "admin"}, RedirectTo("/login")},
		{"matching role", RoleAdmin, session.Session{Token: "t", Role: "admin"}, Allowed()},
		{"wrong role", RoleAdmin, session.Session{Token: "t", Role: "doctor"}, RedirectTo("/")},
		{"missing role", RolePatient, session.Session{Token: "t"}, RedirectTo("/")},
		{"unknown role", RolePatient, session.Session{Token: "t", Role: "superuser"}, RedirectTo("/")},
		{"any role", RoleAny, session.Session{Token: "t", Role: "superuser"}, Allowed()},
		{"any role empty role", RoleAny, session.Session{Token: "t"}, Allowed()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequireRole(tt.required, tt.session))
		})
	}
}

func TestRequireRole_AllRoleCombinations(t *testing.T) {
	roles := []string{"", "admin", "doctor", "patient", "garbage"}
	for _, required := range []Role{RoleAdmin, RoleDoctor, RolePatient} {
		for _, role := range roles {
			anon := RequireRole(required, session.Session{Role: role})
			assert.Equal(t, RedirectTo(LoginPath), anon, "anonymous with role %q", role)

			got := RequireRole(required, session.Session{Token: "t", Role: role})
			if role == string(required) {
				assert.True(t, got.Allow)
			} else {
				assert.Equal(t, RedirectTo(HomePath), got, "required %s, role %q", required, role)
			}
		}
	}
}

func TestPublicOnly(t *testing.T) {
	tests := []struct {
		name    string
		session session.Session
		want    Decision
	}{
		{"anonymous", session.Session{}, Allowed()},
		{"stale role without token", session.Session{Role: "admin"}, Allowed()},
		{"admin", session.Session{Token: "t", Role: "admin"}, RedirectTo("/admin/dashboard")},
		{"doctor", session.Session{Token: "t", Role: "doctor"}, RedirectTo("/doctor/dashboard")},
		{"patient", session.Session{Token: "t", Role: "patient"}, RedirectTo("/patient/dashboard")},
		{"no role", session.Session{Token: "t"}, RedirectTo("/")},
		{"unknown role", session.Session{Token: "t", Role: "Admin"}, RedirectTo("/")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicOnly(tt.session))
		})
	}
}

func TestGuardsDoNotMutateSession(t *testing.T) {
	store := session.NewMemoryStore()
	s := session.Session{Token: "t", Role: "doctor", Name: "Dr. Who", Email: "who@example.com"}
	_ = store.Write(s)

	RequireRole(RoleAdmin, store.Read())
	PublicOnly(store.Read())
	Decide("/patient/dashboard", store.Read())

	assert.Equal(t, s, store.Read())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Policy
	}{
		{"/", Public},
		{"/about", Public},
		{"/doctors", Public},
		{"/doctors/", Public},
		{"/doctors/dr-anita-chaurasiya", Public},
		{"/contact", Public},
		{"/logout", Public},
		{"/login", PublicOnlyPolicy},
		{"/register/", PublicOnlyPolicy},
		{"/auth/google", PublicOnlyPolicy},
		{"/book", Protected(RolePatient)},
		{"/account", Protected(RoleAny)},
		{"/admin/dashboard", Protected(RoleAdmin)},
		{"/admin/doctors/42/delete", Protected(RoleAdmin)},
		{"/doctor/dashboard", Protected(RoleDoctor)},
		{"/patient/dashboard", Protected(RolePatient)},
		{"/patient/appointments/7/cancel", Protected(RolePatient)},
		{"/healthcheck", Public},
		{"/unknown", Public},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestDecide(t *testing.T) {
	doctor := session.Session{Token: "t", Role: "doctor"}
	patient := session.Session{Token: "t", Role: "patient"}

	assert.True(t, Decide("/doctor/dashboard", doctor).Allow)
	assert.Equal(t, RedirectTo("/"), Decide("/admin/dashboard", doctor))
	assert.Equal(t, RedirectTo("/login"), Decide("/book", session.Session{}))
	assert.Equal(t, RedirectTo("/patient/dashboard"), Decide("/login", patient))
	assert.True(t, Decide("/account", doctor).Allow)
	assert.True(t, Decide("/doctors", session.Session{}).Allow)
}

func TestPolicyName(t *testing.T) {
	assert.Equal(t, "public", Public.Name())
	assert.Equal(t, "public_only", PublicOnlyPolicy.Name())
	assert.Equal(t, "protected", Protected(RoleAny).Name())
	assert.Equal(t, "protected:admin", Protected(RoleAdmin).Name())
}
