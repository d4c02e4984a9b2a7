package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/contactdesk/internal/ports/secondary"
)

// EventRepository implements secondary.EventRepository with SQLite.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new SQLite event repository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create persists a new planning event.
// The event record must have its ID pre-populated by the service layer.
func (r *EventRepository) Create(ctx context.Context, event *secondary.EventRecord) error {
	if event.ID == "" {
		return fmt.Errorf("event ID must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO events (id, contact_id, user_id, datetime, comment) VALUES (?, ?, ?, ?, ?)",
		event.ID, event.ContactID, event.UserID, event.Datetime, event.Comment,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}
