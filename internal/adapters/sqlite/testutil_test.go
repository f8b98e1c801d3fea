// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Instead, use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/pulse/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// Every :memory: connection is a separate database, so the pool is pinned
// to a single connection.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedInitiative inserts a test initiative and returns its ID.
func seedInitiative(t *testing.T, db *sql.DB, id, ownerID, name, kind string) string {
	t.Helper()
	if id == "" {
		id = "INI-001"
	}
	if ownerID == "" {
		ownerID = "user-1"
	}
	if name == "" {
		name = "Test Initiative"
	}
	if kind == "" {
		kind = "standard"
	}
	_, err := db.Exec(
		"INSERT INTO initiatives (id, owner_id, name, kind, created_at) VALUES (?, ?, ?, ?, ?)",
		id, ownerID, name, kind, "2026-01-01T00:00:00.000000000Z",
	)
	if err != nil {
		t.Fatalf("failed to seed initiative: %v", err)
	}
	return id
}

// seedUpdate inserts a test update with the given creation timestamp and returns its ID.
func seedUpdate(t *testing.T, db *sql.DB, id, initiativeID, createdAt string) string {
	t.Helper()
	if initiativeID == "" {
		initiativeID = "INI-001"
	}
	if createdAt == "" {
		createdAt = "2026-01-02T00:00:00.000000000Z"
	}
	_, err := db.Exec(
		`INSERT INTO updates (id, initiative_id, created_at, confidence_plan, confidence_alignment,
			confidence_execution, confidence_outcomes, status_mood)
		VALUES (?, ?, ?, 'good', 'good', 'good', 'na', 'good')`,
		id, initiativeID, createdAt,
	)
	if err != nil {
		t.Fatalf("failed to seed update: %v", err)
	}
	return id
}

// seedTask inserts a test task and returns its ID. An empty dueDate stores NULL.
func seedTask(t *testing.T, db *sql.DB, id, updateID, text string, completed bool, order int, dueDate string) string {
	t.Helper()
	var due any
	if dueDate != "" {
		due = dueDate
	}
	_, err := db.Exec(
		"INSERT INTO tasks (id, update_id, task_text, is_completed, display_order, due_date) VALUES (?, ?, ?, ?, ?, ?)",
		id, updateID, text, completed, order, due,
	)
	if err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return id
}
