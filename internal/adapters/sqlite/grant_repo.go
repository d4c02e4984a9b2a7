package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/contactdesk/internal/ports/secondary"
)

// GrantRepository implements secondary.GrantRepository with SQLite.
type GrantRepository struct {
	db *sql.DB
}

// NewGrantRepository creates a new SQLite grant repository.
func NewGrantRepository(db *sql.DB) *GrantRepository {
	return &GrantRepository{db: db}
}

// ListForUser retrieves every grant of a user's profile.
func (r *GrantRepository) ListForUser(ctx context.Context, userID string) ([]*secondary.GrantRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT component, action, field_name, status_id FROM grants WHERE user_id = ?",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	defer rows.Close()

	var grants []*secondary.GrantRecord
	for rows.Next() {
		var fieldName, statusID sql.NullString
		record := &secondary.GrantRecord{}
		if err := rows.Scan(&record.Component, &record.Action, &fieldName, &statusID); err != nil {
			return nil, fmt.Errorf("failed to scan grant: %w", err)
		}
		record.FieldName = fieldName.String
		record.StatusID = statusID.String
		grants = append(grants, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate grants: %w", err)
	}
	return grants, nil
}
