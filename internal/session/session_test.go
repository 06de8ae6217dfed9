package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var alice = Session{Token: "t1", Role: "patient", Name: "Alice", Email: "alice@example.com"}

func storeFactories(t *testing.T) map[string]func() Store {
	dir := t.TempDir()
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"file":   func() Store { return NewFileStore(filepath.Join(dir, "nested", "session.json")) },
	}
}

func TestStore_WriteThenRead(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore()
			require.NoError(t, store.Write(alice))
			assert.Equal(t, alice, store.Read())

			// A second write replaces every field, including ones left empty
			require.NoError(t, store.Write(Session{Token: "t2", Role: "admin"}))
			assert.Equal(t, Session{Token: "t2", Role: "admin"}, store.Read())
		})
	}
}

func TestStore_ClearThenRead(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore()
			require.NoError(t, store.Write(alice))
			require.NoError(t, store.Clear())

			s := store.Read()
			assert.Equal(t, Session{}, s)
			assert.False(t, s.Authenticated())

			// Clearing an empty store is fine
			require.NoError(t, store.Clear())
		})
	}
}

func TestStore_AcceptsArbitraryRole(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Write(Session{Token: "x", Role: "superuser"}))
	assert.Equal(t, "superuser", store.Read().Role)
}

func TestMemoryStore_PartialState(t *testing.T) {
	store := NewMemoryStore()
	store.Set(KeyRole, "admin")

	s := store.Read()
	assert.False(t, s.Authenticated())
	assert.Equal(t, "admin", s.Role)
}

func TestFileStore_SharedBetweenInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	first := NewFileStore(path)
	second := NewFileStore(path)

	require.NoError(t, first.Write(alice))
	assert.Equal(t, alice, second.Read())

	require.NoError(t, second.Clear())
	assert.Equal(t, Session{}, first.Read())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_CorruptFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileStore(path)
	assert.Equal(t, Session{}, store.Read())

	require.NoError(t, store.Write(alice))
	assert.Equal(t, alice, store.Read())
}

func TestFileStore_KeepsForeignKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark","token":"old"}`), 0o600))

	store := NewFileStore(path)
	require.NoError(t, store.Clear())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark"}`, string(data))
}

func TestTokenFromContext(t *testing.T) {
	assert.Empty(t, TokenFromContext(context.Background()))

	store := NewMemoryStore()
	ctx := NewContext(context.Background(), store)
	assert.Empty(t, TokenFromContext(ctx))

	require.NoError(t, store.Write(alice))
	assert.Equal(t, "t1", TokenFromContext(ctx))
}

func newCookieManager() (*Manager, *jwt.TokenManager) {
	tokens := jwt.NewTokenManager("test-secret", "clinic-web", time.Hour)
	backend := NewCookieBackend(tokens, CookieOptions{TTLSeconds: 3600})
	return NewManager(backend), tokens
}

func newContext(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		c.Request.AddCookie(cookie)
	}
	return c, w
}

func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestManager_CookieRoundTrip(t *testing.T) {
	manager, _ := newCookieManager()

	c, w := newContext()
	store := manager.Open(c)
	assert.Equal(t, Session{}, store.Read())
	require.NoError(t, store.Write(alice))
	assert.Equal(t, alice, store.Read())
	assert.Same(t, store, manager.Open(c))

	cookie := responseCookie(w, CookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	next, _ := newContext(cookie)
	assert.Equal(t, alice, manager.Open(next).Read())
}

func TestManager_CookieClear(t *testing.T) {
	manager, tokens := newCookieManager()
	signed, err := tokens.Sign(alice.Values())
	require.NoError(t, err)

	c, w := newContext(&http.Cookie{Name: CookieName, Value: signed})
	store := manager.Open(c)
	assert.Equal(t, alice, store.Read())

	require.NoError(t, store.Clear())
	assert.Equal(t, Session{}, store.Read())

	cookie := responseCookie(w, CookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestManager_TamperedCookieReadsEmpty(t *testing.T) {
	manager, _ := newCookieManager()

	c, w := newContext(&http.Cookie{Name: CookieName, Value: "not-a-token"})
	assert.Equal(t, Session{}, manager.Open(c).Read())

	cookie := responseCookie(w, CookieName)
	require.NotNil(t, cookie)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestCurrent_WithoutMiddleware(t *testing.T) {
	c, _ := newContext()
	assert.Equal(t, Session{}, Current(c).Read())
}

func TestPostgresBackend_LoadWithoutUsableCookie(t *testing.T) {
	backend := NewPostgresBackend(nil, time.Hour, CookieOptions{})

	c, _ := newContext()
	assert.Empty(t, backend.Load(c))

	c, w := newContext(&http.Cookie{Name: SessionIDCookieName, Value: "not-a-uuid"})
	assert.Empty(t, backend.Load(c))
	cookie := responseCookie(w, SessionIDCookieName)
	require.NotNil(t, cookie)
	assert.Less(t, cookie.MaxAge, 0)

	// Nothing to delete without an id
	c, _ = newContext()
	assert.NoError(t, backend.Remove(c))
}
