package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete modern schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(). When adding columns or tables, add a
// migration in migrations.go and update SchemaSQL here; TestMigrationsMatchSchema
// fails if the two drift apart.
//
// created_at values are written by the application as fixed-width UTC
// timestamps (see secondary.TimestampLayout) so they sort lexically.
const SchemaSQL = `
-- Initiatives (tracked projects, owned by one user)
CREATE TABLE IF NOT EXISTS initiatives (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL,
	name TEXT NOT NULL,
	created_at TEXT NOT NULL,
	kind TEXT NOT NULL CHECK(kind IN ('standard', 'miscellaneous')) DEFAULT 'standard',
	UNIQUE(owner_id, name)
);

-- Updates (append-only status snapshots)
CREATE TABLE IF NOT EXISTS updates (
	id TEXT PRIMARY KEY,
	initiative_id TEXT NOT NULL,
	created_at TEXT NOT NULL,
	confidence_plan TEXT CHECK(confidence_plan IN ('poor', 'medium', 'good', 'excellent')),
	confidence_alignment TEXT CHECK(confidence_alignment IN ('poor', 'medium', 'good', 'excellent')),
	confidence_execution TEXT CHECK(confidence_execution IN ('poor', 'medium', 'good', 'excellent')),
	confidence_outcomes TEXT CHECK(confidence_outcomes IN ('poor', 'medium', 'good', 'excellent', 'na')),
	status_mood TEXT CHECK(status_mood IN ('great', 'good', 'neutral', 'concerned', 'warning')),
	latest_status TEXT,
	biggest_risk_worry TEXT,
	dept_product_aligned INTEGER NOT NULL DEFAULT 0,
	dept_tech_aligned INTEGER NOT NULL DEFAULT 0,
	dept_marketing_aligned INTEGER NOT NULL DEFAULT 0,
	dept_client_success_aligned INTEGER NOT NULL DEFAULT 0,
	dept_commercial_aligned INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (initiative_id) REFERENCES initiatives(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_updates_initiative_created ON updates(initiative_id, created_at);

-- Tasks (checklist items scoped to exactly one update)
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	update_id TEXT NOT NULL,
	task_text TEXT NOT NULL,
	is_completed INTEGER NOT NULL DEFAULT 0,
	display_order INTEGER NOT NULL DEFAULT 0,
	due_date TEXT,
	FOREIGN KEY (update_id) REFERENCES updates(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_tasks_update_order ON tasks(update_id, display_order);
`

// InitSchema creates the schema on a fresh database, or runs pending
// migrations on an existing one.
func InitSchema(database *sql.DB) error {
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	if tableCount > 0 {
		return RunMigrations(database)
	}

	var legacyCount int
	err = database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='initiatives'").Scan(&legacyCount)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if legacyCount > 0 {
		// Tables predate version tracking.
		return RunMigrations(database)
	}

	// Completely fresh install - create modern schema directly and mark
	// every migration as applied.
	if _, err := database.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := ensureVersionTable(database); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", m.Version, err)
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
