// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"testing"

	"gorm.io/gorm"

	"notes-service/internal/infrastructure/db"
	"notes-service/internal/logger"
)

// New returns a migrated in-memory SQLite database private to t. db.Open
// pins SQLite to one connection, so every query sees the same memory store.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(db.DriverSQLite, ":memory:", logger.Nop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close(gdb)
	})
	return gdb
}
