package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_initiatives_updates_tasks",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_due_date_to_tasks",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_kind_to_initiatives",
		Up:      migrationV3,
	},
}

// LatestVersion returns the schema version after all migrations.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

// CurrentVersion returns the highest applied migration version (0 if none).
func CurrentVersion(database *sql.DB) (int, error) {
	if err := ensureVersionTable(database); err != nil {
		return 0, err
	}
	var version int
	err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return version, nil
}

// RunMigrations applies every migration newer than the recorded version.
// Each migration runs in its own transaction together with its version row.
func RunMigrations(database *sql.DB) error {
	currentVersion, err := CurrentVersion(database)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := database.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

func ensureVersionTable(database *sql.DB) error {
	_, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// migrationV1 creates the base initiative/update/task tables.
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS initiatives (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at TEXT NOT NULL,
			UNIQUE(owner_id, name)
		);

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

		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			update_id TEXT NOT NULL,
			task_text TEXT NOT NULL,
			is_completed INTEGER NOT NULL DEFAULT 0,
			display_order INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (update_id) REFERENCES updates(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_update_order ON tasks(update_id, display_order);
	`)
	return err
}

// migrationV2 adds optional due dates (YYYY-MM-DD) to tasks.
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec("ALTER TABLE tasks ADD COLUMN due_date TEXT")
	return err
}

// migrationV3 adds the initiative kind and marks existing "Other Projects"
// rows as the miscellaneous container.
func migrationV3(tx *sql.Tx) error {
	if _, err := tx.Exec(`ALTER TABLE initiatives ADD COLUMN kind TEXT NOT NULL CHECK(kind IN ('standard', 'miscellaneous')) DEFAULT 'standard'`); err != nil {
		return err
	}
	_, err := tx.Exec("UPDATE initiatives SET kind = 'miscellaneous' WHERE name = 'Other Projects'")
	return err
}
