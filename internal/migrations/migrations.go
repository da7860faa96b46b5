// Package migrations embeds the goose schema migrations for both supported
// database dialects.
package migrations

import "embed"

//go:embed sqlite/*.sql
var SQLite embed.FS

//go:embed postgres/*.sql
var Postgres embed.FS
