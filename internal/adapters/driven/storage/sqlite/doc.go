// Package sqlite provides a SQLite-backed implementation of the document
// store port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. It gives the knowledge
// base durability across restarts while keeping the default in-memory store
// available for tests and ephemeral deployments.
//
// # Schema
//
// The database schema is managed through versioned migrations embedded from
// the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.switchboard/data/knowledge.db
package sqlite
