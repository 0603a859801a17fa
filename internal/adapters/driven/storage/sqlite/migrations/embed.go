// Package migrations holds the numbered schema files of the snapshot
// database. Each NNN_name.up.sql file inserts its own version into
// schema_migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
