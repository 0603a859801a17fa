// Package memory provides in-memory implementations of driven ports:
// a parse result cache and a config store for runs without a config file.
package memory
