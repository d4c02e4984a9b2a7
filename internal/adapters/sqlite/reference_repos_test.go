package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/contactdesk/internal/adapters/sqlite"
	"github.com/example/contactdesk/internal/ports/secondary"
)

// ============================================================================
// StatusRepository Tests
// ============================================================================

func TestStatusRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewStatusRepository(db)

	db.Exec("INSERT INTO statuses (id, name, color, type, client_default, is_event) VALUES ('ST-CLIENT', 'Client', '#673ab7', 'client', 1, 0)")

	record, err := repo.GetByID(context.Background(), "ST-CLIENT")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.Name != "Client" || !record.ClientDefault || record.IsEvent {
		t.Errorf("unexpected record: %+v", record)
	}
}

func TestStatusRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewStatusRepository(db)

	if _, err := repo.GetByID(context.Background(), "ST-missing"); err == nil {
		t.Fatal("expected error for missing status")
	}
}

func TestStatusRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewStatusRepository(db)

	seedStatus(t, db, "ST-NEW", "Nouveau", "lead")
	seedStatus(t, db, "ST-CLIENT", "Client", "client")

	statuses, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(statuses) != 2 {
		t.Errorf("expected 2 statuses, got %d", len(statuses))
	}
}

// ============================================================================
// GrantRepository Tests
// ============================================================================

func TestGrantRepository_ListForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewGrantRepository(db)

	seedUser(t, db, "USR-001", "Marc", "teleoperator")
	seedUser(t, db, "USR-002", "Sophie", "teleoperator")
	db.Exec("INSERT INTO grants (user_id, component, action, status_id) VALUES ('USR-001', 'statuses', 'view', 'ST-NEW')")
	db.Exec("INSERT INTO grants (user_id, component, action, field_name) VALUES ('USR-001', 'contact_tabs', 'edit', 'informations')")
	db.Exec("INSERT INTO grants (user_id, component, action) VALUES ('USR-002', 'planning', 'create')")

	grants, err := repo.ListForUser(context.Background(), "USR-001")
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(grants) != 2 {
		t.Fatalf("expected 2 grants, got %d", len(grants))
	}
}

func TestGrantRepository_ListForUser_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewGrantRepository(db)

	grants, err := repo.ListForUser(context.Background(), "USR-unknown")
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(grants) != 0 {
		t.Errorf("expected no grants, got %d", len(grants))
	}
}

// ============================================================================
// NoteRepository Tests
// ============================================================================

func TestNoteRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewNoteRepository(db)
	ctx := context.Background()

	seedUser(t, db, "USR-001", "Marc", "teleoperator")
	seedContact(t, db, "CT-001", "", "Ana", "Moreau")
	db.Exec("INSERT INTO note_categories (id, name) VALUES ('CAT-001', 'Suivi')")

	err := repo.Create(ctx, &secondary.NoteRecord{
		ID: "NOTE-001", ContactID: "CT-001", UserID: "USR-001",
		Text: "call back tomorrow", CategoryID: "CAT-001",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var text string
	if err := db.QueryRow("SELECT text FROM notes WHERE id = 'NOTE-001'").Scan(&text); err != nil {
		t.Fatalf("failed to read note back: %v", err)
	}
	if text != "call back tomorrow" {
		t.Errorf("unexpected note text: %s", text)
	}
}

func TestNoteRepository_Create_RequiresID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewNoteRepository(db)

	err := repo.Create(context.Background(), &secondary.NoteRecord{ContactID: "CT-001"})
	if err == nil {
		t.Fatal("expected error for missing ID")
	}
}

func TestNoteRepository_ListCategories(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewNoteRepository(db)

	db.Exec("INSERT INTO note_categories (id, name) VALUES ('CAT-001', 'Suivi')")
	db.Exec("INSERT INTO note_categories (id, name) VALUES ('CAT-002', 'Relance')")

	categories, err := repo.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("expected 2 categories, got %d", len(categories))
	}
	// Ordered by name
	if categories[0].Name != "Relance" {
		t.Errorf("expected name ordering, got %s first", categories[0].Name)
	}
}

// ============================================================================
// EventRepository Tests
// ============================================================================

func TestEventRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewEventRepository(db)

	seedUser(t, db, "USR-001", "Marc", "teleoperator")
	seedContact(t, db, "CT-001", "", "Ana", "Moreau")

	err := repo.Create(context.Background(), &secondary.EventRecord{
		ID: "EVT-001", ContactID: "CT-001", UserID: "USR-001",
		Datetime: "2026-09-01 09:05", Comment: "rdv",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var datetime string
	if err := db.QueryRow("SELECT datetime FROM events WHERE id = 'EVT-001'").Scan(&datetime); err != nil {
		t.Fatalf("failed to read event back: %v", err)
	}
	if datetime != "2026-09-01 09:05" {
		t.Errorf("unexpected event datetime: %s", datetime)
	}
}

// ============================================================================
// UserRepository Tests
// ============================================================================

func TestUserRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewUserRepository(db)

	seedUser(t, db, "USR-001", "Marc", "teleoperator")

	record, err := repo.GetByID(context.Background(), "USR-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.Name != "Marc" || record.Role != "teleoperator" {
		t.Errorf("unexpected record: %+v", record)
	}
}

func TestUserRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewUserRepository(db)

	seedUser(t, db, "USR-001", "Marc", "teleoperator")
	seedUser(t, db, "USR-002", "Karim", "confirmateur")

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}

// ============================================================================
// SettingsRepository Tests
// ============================================================================

func TestSettingsRepository_ForcedFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	seedUser(t, db, "USR-001", "Marc", "teleoperator")
	db.Exec(`INSERT INTO forced_filters (user_id, column_name, type, config) VALUES ('USR-001', 'platform', 'defined', '{"values":["mym"]}')`)
	db.Exec(`INSERT INTO forced_filters (user_id, column_name, type, config) VALUES ('USR-001', 'created_at', 'open', '{"date_from":"2026-01-01"}')`)

	records, err := repo.ForcedFilters(context.Background(), "USR-001")
	if err != nil {
		t.Fatalf("ForcedFilters failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, r := range records {
		switch r.Column {
		case "platform":
			if r.Type != "defined" || len(r.Values) != 1 || r.Values[0] != "mym" {
				t.Errorf("unexpected platform record: %+v", r)
			}
		case "created_at":
			if r.Type != "open" || r.DateFrom != "2026-01-01" {
				t.Errorf("unexpected created_at record: %+v", r)
			}
		default:
			t.Errorf("unexpected column %s", r.Column)
		}
	}
}

func TestSettingsRepository_ForcedFilters_MalformedConfig(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	seedUser(t, db, "USR-001", "Marc", "teleoperator")
	db.Exec(`INSERT INTO forced_filters (user_id, column_name, type, config) VALUES ('USR-001', 'platform', 'defined', 'not json')`)

	if _, err := repo.ForcedFilters(context.Background(), "USR-001"); err == nil {
		t.Fatal("expected error for malformed config")
	}
}
