// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Comparison and file matching are pure functions over domain types;
// parsing, discovery and persistence go through driven ports.
package services
