package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/pkg/metrics"
)

// ContextKey is the gin context key holding the request's Store
const ContextKey = "clinic_session"

// Backend persists a browser session's values between requests.
//
// Load never fails: missing, expired, or tampered state loads as empty.
type Backend interface {
	Name() string
	Load(c *gin.Context) map[string]string
	Save(c *gin.Context, values map[string]string) error
	Remove(c *gin.Context) error
}

// CookieOptions are shared by every cookie a backend sets
type CookieOptions struct {
	Domain     string
	Secure     bool
	TTLSeconds int
}

func (o CookieOptions) set(c *gin.Context, name, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, o.TTLSeconds, "/", o.Domain, o.Secure, true)
}

func (o CookieOptions) clear(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", o.Domain, o.Secure, true)
}

// Manager hands out request-scoped stores over a Backend
type Manager struct {
	backend Backend
}

// NewManager creates a manager over backend
func NewManager(backend Backend) *Manager {
	return &Manager{backend: backend}
}

// Backend returns the configured backend name
func (m *Manager) Backend() string {
	return m.backend.Name()
}

// Open returns the Store for the request, loading it on first use.
// Every call within one request returns the same Store.
func (m *Manager) Open(c *gin.Context) Store {
	if existing, ok := c.Get(ContextKey); ok {
		if store, ok := existing.(Store); ok {
			return store
		}
	}

	store := &requestStore{
		c:       c,
		backend: m.backend,
		values:  m.backend.Load(c),
	}
	c.Set(ContextKey, store)
	return store
}

// Current returns the Store opened for the request, or an empty one when no
// session middleware ran.
func Current(c *gin.Context) Store {
	if existing, ok := c.Get(ContextKey); ok {
		if store, ok := existing.(Store); ok {
			return store
		}
	}
	return NewMemoryStore()
}

// requestStore serves reads from the snapshot loaded at request start and
// writes through to the backend.
type requestStore struct {
	c       *gin.Context
	backend Backend
	values  map[string]string
}

func (r *requestStore) Read() Session {
	return FromValues(r.values)
}

func (r *requestStore) Write(s Session) error {
	values := s.Values()
	if err := r.backend.Save(r.c, values); err != nil {
		metrics.SessionWrites.WithLabelValues(r.backend.Name(), "write", "error").Inc()
		return err
	}
	metrics.SessionWrites.WithLabelValues(r.backend.Name(), "write", "success").Inc()
	r.values = values
	return nil
}

func (r *requestStore) Clear() error {
	if err := r.backend.Remove(r.c); err != nil {
		metrics.SessionWrites.WithLabelValues(r.backend.Name(), "clear", "error").Inc()
		return err
	}
	metrics.SessionWrites.WithLabelValues(r.backend.Name(), "clear", "success").Inc()
	r.values = map[string]string{}
	return nil
}
