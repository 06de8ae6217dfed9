package session

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDB keeps web_session_values rows in memory
type fakeDB struct {
	mu   sync.Mutex
	rows map[uuid.UUID]map[string]string
}

func newFakeDB() *fakeDB {
	return &fakeDB{rows: map[uuid.UUID]map[string]string{}}
}

func (db *fakeDB) session(id uuid.UUID) map[string]string {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := map[string]string{}
	for k, v := range db.rows[id] {
		out[k] = v
	}
	return out
}

func (db *fakeDB) ids() []uuid.UUID {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]uuid.UUID, 0, len(db.rows))
	for id := range db.rows {
		out = append(out, id)
	}
	return out
}

func (db *fakeDB) apply(sql string, args []any) {
	db.mu.Lock()
	defer db.mu.Unlock()

	sql = strings.TrimSpace(sql)
	switch {
	case strings.HasPrefix(sql, "DELETE FROM web_session_values WHERE session_id"):
		delete(db.rows, args[0].(uuid.UUID))
	case strings.HasPrefix(sql, "INSERT INTO web_session_values"):
		id := args[0].(uuid.UUID)
		if db.rows[id] == nil {
			db.rows[id] = map[string]string{}
		}
		db.rows[id][args[1].(string)] = args[2].(string)
	}
}

func (db *fakeDB) Query(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
	values := db.session(args[0].(uuid.UUID))
	rows := &fakeRows{}
	for _, key := range Keys {
		if v, ok := values[key]; ok {
			rows.data = append(rows.data, [2]string{key, v})
		}
	}
	return rows, nil
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.apply(sql, args)
	return pgconn.NewCommandTag("DELETE 0"), nil
}

func (db *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	return &fakeTx{db: db}, nil
}

// fakeTx buffers statements until Commit
type fakeTx struct {
	pgx.Tx
	db      *fakeDB
	pending []func()
}

func (tx *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	tx.pending = append(tx.pending, func() { tx.db.apply(sql, args) })
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (tx *fakeTx) Commit(context.Context) error {
	for _, op := range tx.pending {
		op()
	}
	tx.pending = nil
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	tx.pending = nil
	return nil
}

type fakeRows struct {
	pgx.Rows
	data [][2]string
	pos  int
}

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	*dest[0].(*string) = row[0]
	*dest[1].(*string) = row[1]
	return nil
}

func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Close()     {}

func sidCookie(id string) *http.Cookie {
	return &http.Cookie{Name: SessionIDCookieName, Value: id}
}

func TestPostgresBackend_WriteReadClear(t *testing.T) {
	db := newFakeDB()
	manager := NewManager(NewPostgresBackend(db, time.Hour, CookieOptions{TTLSeconds: 3600}))

	c, w := newContext()
	require.NoError(t, manager.Open(c).Write(alice))
	issued := responseCookie(w, SessionIDCookieName)
	require.NotNil(t, issued)

	c, _ = newContext(sidCookie(issued.Value))
	store := manager.Open(c)
	assert.Equal(t, alice, store.Read())

	require.NoError(t, store.Clear())
	assert.Empty(t, db.ids())

	c, _ = newContext(sidCookie(issued.Value))
	assert.Equal(t, Session{}, manager.Open(c).Read())
}

func TestPostgresBackend_LoginRotatesPlantedID(t *testing.T) {
	db := newFakeDB()
	backend := NewPostgresBackend(db, time.Hour, CookieOptions{TTLSeconds: 3600})
	planted := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	db.rows[planted] = map[string]string{KeyRole: "patient"}

	c, w := newContext(sidCookie(planted.String()))
	require.NoError(t, backend.Save(c, alice.Values()))

	cookie := responseCookie(w, SessionIDCookieName)
	require.NotNil(t, cookie)
	assert.NotEqual(t, planted.String(), cookie.Value)
	assert.Empty(t, db.session(planted))

	rotated := uuid.MustParse(cookie.Value)
	assert.Equal(t, alice, FromValues(db.session(rotated)))
	assert.Equal(t, []uuid.UUID{rotated}, db.ids())
}

func TestPostgresBackend_RepeatedWritesInOneRequestKeepOneSession(t *testing.T) {
	db := newFakeDB()
	manager := NewManager(NewPostgresBackend(db, time.Hour, CookieOptions{TTLSeconds: 3600}))

	c, w := newContext()
	store := manager.Open(c)
	require.NoError(t, store.Write(alice))
	require.NoError(t, store.Write(Session{Token: "t2", Role: "doctor"}))

	ids := db.ids()
	require.Len(t, ids, 1)
	assert.Equal(t, Session{Token: "t2", Role: "doctor"}, FromValues(db.session(ids[0])))

	cookies := w.Result().Cookies()
	last := cookies[len(cookies)-1]
	assert.Equal(t, ids[0].String(), last.Value)
}
