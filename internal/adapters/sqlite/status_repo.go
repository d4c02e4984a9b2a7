package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/contactdesk/internal/ports/secondary"
)

// StatusRepository implements secondary.StatusRepository with SQLite.
type StatusRepository struct {
	db *sql.DB
}

// NewStatusRepository creates a new SQLite status repository.
func NewStatusRepository(db *sql.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

// GetByID retrieves a status by its ID.
func (r *StatusRepository) GetByID(ctx context.Context, id string) (*secondary.StatusRecord, error) {
	record := &secondary.StatusRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, color, type, client_default, is_event FROM statuses WHERE id = ?",
		id,
	).Scan(&record.ID, &record.Name, &record.Color, &record.Type, &record.ClientDefault, &record.IsEvent)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("status %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return record, nil
}

// List retrieves the whole status reference table.
func (r *StatusRepository) List(ctx context.Context) ([]*secondary.StatusRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, color, type, client_default, is_event FROM statuses ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	defer rows.Close()

	var statuses []*secondary.StatusRecord
	for rows.Next() {
		record := &secondary.StatusRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &record.Color, &record.Type, &record.ClientDefault, &record.IsEvent); err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		statuses = append(statuses, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate statuses: %w", err)
	}
	return statuses, nil
}
