package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/contactdesk/internal/ports/secondary"
)

// NoteRepository implements secondary.NoteRepository with SQLite.
type NoteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new SQLite note repository.
func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create persists a new note.
// The note record must have its ID pre-populated by the service layer.
func (r *NoteRepository) Create(ctx context.Context, note *secondary.NoteRecord) error {
	if note.ID == "" {
		return fmt.Errorf("note ID must be pre-populated by service layer")
	}

	var categoryID sql.NullString
	if note.CategoryID != "" {
		categoryID = sql.NullString{String: note.CategoryID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO notes (id, contact_id, user_id, text, category_id) VALUES (?, ?, ?, ?, ?)",
		note.ID, note.ContactID, note.UserID, note.Text, categoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

// ListCategories retrieves the configured note categories.
func (r *NoteRepository) ListCategories(ctx context.Context) ([]*secondary.NoteCategoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM note_categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list note categories: %w", err)
	}
	defer rows.Close()

	var categories []*secondary.NoteCategoryRecord
	for rows.Next() {
		record := &secondary.NoteCategoryRecord{}
		if err := rows.Scan(&record.ID, &record.Name); err != nil {
			return nil, fmt.Errorf("failed to scan note category: %w", err)
		}
		categories = append(categories, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate note categories: %w", err)
	}
	return categories, nil
}
