package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_contact_desk_schema",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_last_call_at_to_contacts",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_forced_filters_table",
		Up:      migrationV3,
	},
}

// RunMigrations executes all pending migrations
func RunMigrations() error {
	db, err := GetDB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}

	// Create schema_version table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(db); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("✓ Migration %d completed\n", migration.Version)
	}

	return nil
}

// migrationV1 creates the initial contact desk tables
func migrationV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('teleoperator', 'confirmateur')),
			platform TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS statuses (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT NOT NULL DEFAULT '#cccccc',
			type TEXT NOT NULL CHECK(type IN ('lead', 'client')),
			client_default BOOLEAN NOT NULL DEFAULT 0,
			is_event BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS contacts (
			id TEXT PRIMARY KEY,
			status_id TEXT,
			teleoperator_id TEXT,
			confirmateur_id TEXT,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			stage_name TEXT,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			platform TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			contract_type TEXT,
			collected_amount TEXT,
			bonus TEXT,
			payment_method TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (status_id) REFERENCES statuses(id),
			FOREIGN KEY (teleoperator_id) REFERENCES users(id),
			FOREIGN KEY (confirmateur_id) REFERENCES users(id)
		);

		CREATE TABLE IF NOT EXISTS grants (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			component TEXT NOT NULL,
			action TEXT NOT NULL,
			field_name TEXT,
			status_id TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS note_categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			contact_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			text TEXT NOT NULL,
			category_id TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (category_id) REFERENCES note_categories(id)
		);

		CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			contact_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			datetime TEXT NOT NULL,
			comment TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE,
			FOREIGN KEY (user_id) REFERENCES users(id)
		);

		CREATE INDEX IF NOT EXISTS idx_contacts_status ON contacts(status_id);
		CREATE INDEX IF NOT EXISTS idx_contacts_teleoperator ON contacts(teleoperator_id);
		CREATE INDEX IF NOT EXISTS idx_contacts_confirmateur ON contacts(confirmateur_id);
		CREATE INDEX IF NOT EXISTS idx_grants_user ON grants(user_id);
		CREATE INDEX IF NOT EXISTS idx_notes_contact ON notes(contact_id);
		CREATE INDEX IF NOT EXISTS idx_events_contact ON events(contact_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to create initial tables: %w", err)
	}
	return nil
}

// migrationV2 adds the last call timestamp used by the list's date filters
func migrationV2(db *sql.DB) error {
	_, err := db.Exec(`ALTER TABLE contacts ADD COLUMN last_call_at DATETIME`)
	if err != nil {
		return fmt.Errorf("failed to add last_call_at column: %w", err)
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_contacts_platform ON contacts(platform)`)
	if err != nil {
		return fmt.Errorf("failed to create platform index: %w", err)
	}
	return nil
}

// migrationV3 adds the per-user forced filter configuration table
func migrationV3(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS forced_filters (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			column_name TEXT NOT NULL,
			type TEXT NOT NULL CHECK(type IN ('open', 'defined')),
			config TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			UNIQUE(user_id, column_name)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create forced_filters table: %w", err)
	}
	return nil
}
