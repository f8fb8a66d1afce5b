// Package sqlite provides a SQLite-based credential store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It is selected with credentials.backend = "sqlite" and
// keeps one credential row per provider.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.toolbridge/data/toolbridge.db
package sqlite
