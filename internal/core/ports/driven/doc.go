// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Normaliser: Parses a raw requirements document
//   - DocumentReader: Loads a document from disk
//   - Connector / ConnectorFactory: Discovers documents under a root
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - WorkerPool: Without it, tasks run inline on the caller's goroutine.
//   - ParseCache: Without it, every request re-parses the file.
//   - SnapshotStore: Only needed by the snapshot commands.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
