package db

// SchemaSQL is the complete modern schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// This is the single source of truth for the database schema: tests build
// their in-memory databases from GetSchemaSQL() rather than hardcoding
// CREATE TABLE statements, so a repository referencing a column missing here
// fails immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Users (teleoperators and confirmateurs)
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('teleoperator', 'confirmateur')),
	platform TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Statuses (reference table for lead and client statuses)
CREATE TABLE IF NOT EXISTS statuses (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '#cccccc',
	type TEXT NOT NULL CHECK(type IN ('lead', 'client')),
	client_default BOOLEAN NOT NULL DEFAULT 0,
	is_event BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Contacts
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
	last_call_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (status_id) REFERENCES statuses(id),
	FOREIGN KEY (teleoperator_id) REFERENCES users(id),
	FOREIGN KEY (confirmateur_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_contacts_status ON contacts(status_id);
CREATE INDEX IF NOT EXISTS idx_contacts_teleoperator ON contacts(teleoperator_id);
CREATE INDEX IF NOT EXISTS idx_contacts_confirmateur ON contacts(confirmateur_id);
CREATE INDEX IF NOT EXISTS idx_contacts_platform ON contacts(platform);

-- Permission grants (per-user allow rules; no deny rules exist)
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

CREATE INDEX IF NOT EXISTS idx_grants_user ON grants(user_id);

-- Note categories (reference table)
CREATE TABLE IF NOT EXISTS note_categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

-- Notes (one per status change, plus free-standing notes)
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

CREATE INDEX IF NOT EXISTS idx_notes_contact ON notes(contact_id);

-- Planning events
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

CREATE INDEX IF NOT EXISTS idx_events_contact ON events(contact_id);

-- Forced list filters (administered per user, one JSON config per column)
CREATE TABLE IF NOT EXISTS forced_filters (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	column_name TEXT NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('open', 'defined')),
	config TEXT NOT NULL DEFAULT '{}',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
	UNIQUE(user_id, column_name)
);
`

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Completely fresh install - create modern schema directly and mark
		// every migration as applied so they never re-run.
		if _, err := db.Exec(SchemaSQL); err != nil {
			return err
		}
		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		for i := 1; i <= len(migrations); i++ {
			if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", i); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
