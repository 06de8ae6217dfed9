package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/madhurinidan/clinic-web/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every up migration needs a matching down migration
func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name()] = true
	}

	for name := range names {
		if strings.HasSuffix(name, ".up.sql") {
			down := strings.TrimSuffix(name, ".up.sql") + ".down.sql"
			assert.True(t, names[down], "missing down migration for %s", name)
		}
	}
}

func TestSessionTableMigration(t *testing.T) {
	content, err := fs.ReadFile(migrations.FS, "000001_web_session_values.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(content), "PRIMARY KEY (session_id, key)")
}

func TestConfigureTLS_NotRequested(t *testing.T) {
	cfg, err := configureTLS("postgres://localhost/clinic?sslmode=disable")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestConfigureTLS_MissingBundle(t *testing.T) {
	t.Setenv(caCertEnv, "/nonexistent/ca.pem")
	_, err := configureTLS("postgres://db/clinic?sslmode=verify-full")
	assert.Error(t, err)
}
