package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/contactdesk/internal/ports/secondary"
)

// SettingsRepository implements secondary.SettingsRepository with SQLite.
// Forced filter configurations are administered per user and stored as one
// JSON document per column in the forced_filters table.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SQLite settings repository.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// forcedConfig is the stored JSON shape of one forced filter.
type forcedConfig struct {
	Values   []string `json:"values,omitempty"`
	Value    string   `json:"value,omitempty"`
	DateFrom string   `json:"date_from,omitempty"`
	DateTo   string   `json:"date_to,omitempty"`
}

// ForcedFilters retrieves the forced filter configuration for a user.
func (r *SettingsRepository) ForcedFilters(ctx context.Context, userID string) ([]*secondary.ForcedFilterRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT column_name, type, config FROM forced_filters WHERE user_id = ?",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list forced filters: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ForcedFilterRecord
	for rows.Next() {
		var column, filterType, rawConfig string
		if err := rows.Scan(&column, &filterType, &rawConfig); err != nil {
			return nil, fmt.Errorf("failed to scan forced filter: %w", err)
		}

		var config forcedConfig
		if err := json.Unmarshal([]byte(rawConfig), &config); err != nil {
			return nil, fmt.Errorf("failed to parse forced filter config for %s: %w", column, err)
		}

		records = append(records, &secondary.ForcedFilterRecord{
			Column:   column,
			Type:     filterType,
			Values:   config.Values,
			Value:    config.Value,
			DateFrom: config.DateFrom,
			DateTo:   config.DateTo,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate forced filters: %w", err)
	}
	return records, nil
}
