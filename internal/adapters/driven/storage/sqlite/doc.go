// Package sqlite provides a SQLite-based implementation of the snapshot store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is an .up.sql file that records its
// version in schema_migrations.
//
// A snapshot is one row in snapshots plus its requirements in flat table
// form in snapshot_rows, one row per (requirement, attribute) cell.
//
// # Data Location
//
// By default, the database is stored at ~/.reqdiff/data/snapshots.db
package sqlite
