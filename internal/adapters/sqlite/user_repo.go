package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/contactdesk/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	var platform sql.NullString
	record := &secondary.UserRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, role, platform FROM users WHERE id = ?",
		id,
	).Scan(&record.ID, &record.Name, &record.Role, &platform)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	record.Platform = platform.String
	return record, nil
}

// List retrieves the whole agent directory.
func (r *UserRepository) List(ctx context.Context) ([]*secondary.UserRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, role, platform FROM users ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*secondary.UserRecord
	for rows.Next() {
		var platform sql.NullString
		record := &secondary.UserRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &record.Role, &platform); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		record.Platform = platform.String
		users = append(users, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}
