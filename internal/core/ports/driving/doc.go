// Package driving defines the operations the CLI calls into the core:
// parsing and validating documents, comparing files, folders and
// snapshots, and managing settings.
//
// Implementations live in internal/core/services.
package driving
