// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests: all test setup uses db.GetSchemaSQL() so tests always run against
// the authoritative schema. Do not hardcode CREATE TABLE statements in test
// files.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/contactdesk/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedUser inserts one agent.
func seedUser(t *testing.T, testDB *sql.DB, id, name, role string) {
	t.Helper()
	if _, err := testDB.Exec(
		"INSERT INTO users (id, name, role) VALUES (?, ?, ?)", id, name, role,
	); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}

// seedStatus inserts one status reference entry.
func seedStatus(t *testing.T, testDB *sql.DB, id, name, statusType string) {
	t.Helper()
	if _, err := testDB.Exec(
		"INSERT INTO statuses (id, name, type) VALUES (?, ?, ?)", id, name, statusType,
	); err != nil {
		t.Fatalf("failed to seed status: %v", err)
	}
}

// seedContact inserts a minimal contact on a status.
func seedContact(t *testing.T, testDB *sql.DB, id, statusID, firstName, lastName string) {
	t.Helper()
	if _, err := testDB.Exec(
		"INSERT INTO contacts (id, status_id, first_name, last_name) VALUES (?, ?, ?, ?)",
		id, nullableID(statusID), firstName, lastName,
	); err != nil {
		t.Fatalf("failed to seed contact: %v", err)
	}
}

func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
