// Package sqlite provides the persistent driven.Cache used by ytpicker.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Access tokens and video details share one table; entries
// carry an optional expiry in Unix milliseconds, NULL meaning forever.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.ytpicker/data/cache.db
package sqlite
