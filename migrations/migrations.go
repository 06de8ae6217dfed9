// Package migrations embeds the SQL schema for the server-side session store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
