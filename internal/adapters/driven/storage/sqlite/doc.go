// Package sqlite provides a SQLite-based implementation of the local stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. A single database connection backs two stores:
//
//   - SessionStore: the signed-in session, so sign-in survives restarts
//   - ActivityStore: the local recent-activity log shown on the dashboard
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each applied version is recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.kameleon/kameleon.db
//
// # Thread Safety
//
// All operations are thread-safe. The store relies on SQLite locking in WAL mode.
package sqlite
