package session

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/madhurinidan/clinic-web/pkg/logger"
	"go.uber.org/zap"
)

// SessionIDCookieName is the cookie holding the server-side session id
const SessionIDCookieName = "clinic_sid"

// issuedIDKey holds an id minted earlier in the same request, which the
// request's cookie does not carry yet
const issuedIDKey = "clinic_sid_issued"

// DB is the subset of *pgxpool.Pool the postgres backend uses
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresBackend keeps session values in web_session_values keyed by a
// random id carried in a cookie. Rows older than the TTL read as absent.
type PostgresBackend struct {
	db      DB
	ttl     time.Duration
	options CookieOptions
}

// NewPostgresBackend creates a postgres-backed session store
func NewPostgresBackend(db DB, ttl time.Duration, options CookieOptions) *PostgresBackend {
	return &PostgresBackend{db: db, ttl: ttl, options: options}
}

func (b *PostgresBackend) Name() string {
	return "postgres"
}

func (b *PostgresBackend) sessionID(c *gin.Context) (uuid.UUID, bool) {
	if issued, ok := c.Get(issuedIDKey); ok {
		if id, ok := issued.(uuid.UUID); ok {
			return id, id != uuid.Nil
		}
	}

	raw, err := c.Cookie(SessionIDCookieName)
	if err != nil || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		b.options.clear(c, SessionIDCookieName)
		return uuid.Nil, false
	}
	return id, true
}

func (b *PostgresBackend) Load(c *gin.Context) map[string]string {
	values := map[string]string{}

	id, ok := b.sessionID(c)
	if !ok {
		return values
	}

	ctx := c.Request.Context()
	rows, err := b.db.Query(ctx,
		`SELECT key, value FROM web_session_values
		 WHERE session_id = $1 AND updated_at > $2`,
		id, time.Now().Add(-b.ttl))
	if err != nil {
		logger.Error("Failed to load session", zap.String("session_id", id.String()), zap.Error(err))
		return values
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			logger.Error("Failed to scan session value", zap.Error(err))
			return map[string]string{}
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		logger.Error("Failed to read session rows", zap.Error(err))
		return map[string]string{}
	}

	return values
}

// Save stores values under a freshly minted id and drops the previous one,
// so an id known before login never names an authenticated session.
func (b *PostgresBackend) Save(c *gin.Context, values map[string]string) error {
	ctx := c.Request.Context()

	previous, hadPrevious := b.sessionID(c)
	id := uuid.New()

	tx, err := b.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if hadPrevious {
		if _, err := tx.Exec(ctx,
			"DELETE FROM web_session_values WHERE session_id = $1",
			previous); err != nil {
			return fmt.Errorf("failed to drop previous session: %w", err)
		}
	}

	for _, key := range Keys {
		value, present := values[key]
		if !present {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO web_session_values (session_id, key, value, updated_at)
			 VALUES ($1, $2, $3, NOW())`,
			id, key, value); err != nil {
			return fmt.Errorf("failed to insert session value %s: %w", key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}

	c.Set(issuedIDKey, id)
	b.options.set(c, SessionIDCookieName, id.String())
	return nil
}

func (b *PostgresBackend) Remove(c *gin.Context) error {
	id, ok := b.sessionID(c)
	if !ok {
		return nil
	}

	if _, err := b.db.Exec(c.Request.Context(),
		"DELETE FROM web_session_values WHERE session_id = $1",
		id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	c.Set(issuedIDKey, uuid.Nil)
	b.options.clear(c, SessionIDCookieName)
	return nil
}

// PurgeExpired deletes rows older than the TTL and returns how many went
func (b *PostgresBackend) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := b.db.Exec(ctx,
		"DELETE FROM web_session_values WHERE updated_at <= $1",
		time.Now().Add(-b.ttl))
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RunPurger calls PurgeExpired every interval until ctx is done
func (b *PostgresBackend) RunPurger(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := b.PurgeExpired(ctx)
			if err != nil {
				logger.Error("Session purge failed", zap.Error(err))
				continue
			}
			if purged > 0 {
				logger.Info("Purged expired sessions", zap.Int64("rows", purged))
			}
		}
	}
}
