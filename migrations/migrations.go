// Package migrations embeds the Postgres schema for the escalation store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
