// Package sqlite provides a SQLite-based implementation of the ledger store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It is the optional ledger backend,
// selected with ledger.backend = "sqlite" in config.toml.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Processed IDs live in the processed_messages table with their ledger position,
// so Load returns them in the order they were first recorded.
//
// # Data Location
//
// By default, the database is stored at ~/.sheetmail/data/ledger.db
package sqlite
