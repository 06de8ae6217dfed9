// Package session holds "who is the current user, if anyone".
//
// A Session is persisted as a string key/value mapping under four fixed keys.
// Stores never validate what they are given: any token or role string may be
// written, and reads never fail (absent values read as "").
package session

import "context"

// Persisted key names
const (
	KeyToken = "token"
	KeyRole  = "role"
	KeyName  = "name"
	KeyEmail = "email"
)

// Keys lists every persisted key, in a stable order
var Keys = []string{KeyToken, KeyRole, KeyName, KeyEmail}

// Session is a snapshot of the current user. An empty field means absent.
type Session struct {
	Token string `json:"token,omitempty"`
	Role  string `json:"role,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Authenticated reports whether a token is present. Role is only meaningful
// when this is true.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Values returns the persisted key/value form, omitting absent fields
func (s Session) Values() map[string]string {
	values := make(map[string]string, len(Keys))
	for key, value := range map[string]string{
		KeyToken: s.Token,
		KeyRole:  s.Role,
		KeyName:  s.Name,
		KeyEmail: s.Email,
	} {
		if value != "" {
			values[key] = value
		}
	}
	return values
}

// FromValues rebuilds a Session from its persisted form. Unknown keys are ignored.
func FromValues(values map[string]string) Session {
	return Session{
		Token: values[KeyToken],
		Role:  values[KeyRole],
		Name:  values[KeyName],
		Email: values[KeyEmail],
	}
}

// Store is the single source of truth for the current session.
//
// Write overwrites all four fields; a following Read observes the new values.
// Clear removes all four fields. Neither is transactional across fields for
// concurrent readers in other processes.
type Store interface {
	Read() Session
	Write(s Session) error
	Clear() error
}

type contextKey struct{}

// NewContext returns a context carrying store
func NewContext(ctx context.Context, store Store) context.Context {
	return context.WithValue(ctx, contextKey{}, store)
}

// FromContext returns the store carried by ctx, if any
func FromContext(ctx context.Context) (Store, bool) {
	store, ok := ctx.Value(contextKey{}).(Store)
	return store, ok
}

// TokenFromContext reads the bearer token of the store carried by ctx.
// It reads the store at call time, so a Write earlier in the same request is
// visible to later calls.
func TokenFromContext(ctx context.Context) string {
	store, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return store.Read().Token
}
