// Package seed imports reference data (statuses, agents, grants) from YAML
// files into the database. Administrators maintain these files; the import
// replaces the matching tables wholesale.
package seed

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the root document of a seed file.
type File struct {
	Users         []User         `yaml:"users"`
	Statuses      []Status       `yaml:"statuses"`
	Categories    []Category     `yaml:"note_categories"`
	Grants        []Grant        `yaml:"grants"`
	ForcedFilters []ForcedFilter `yaml:"forced_filters"`
}

// User is one agent directory entry.
type User struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Platform string `yaml:"platform"`
}

// Status is one status reference entry.
type Status struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Color         string `yaml:"color"`
	Type          string `yaml:"type"`
	ClientDefault bool   `yaml:"client_default"`
	IsEvent       bool   `yaml:"is_event"`
}

// Category is one note category.
type Category struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Grant is one permission allow-rule.
type Grant struct {
	UserID    string `yaml:"user"`
	Component string `yaml:"component"`
	Action    string `yaml:"action"`
	FieldName string `yaml:"field"`
	StatusID  string `yaml:"status"`
}

// ForcedFilter is one administered list filter.
type ForcedFilter struct {
	UserID   string   `yaml:"user"`
	Column   string   `yaml:"column"`
	Type     string   `yaml:"type"`
	Values   []string `yaml:"values"`
	Value    string   `yaml:"value"`
	DateFrom string   `yaml:"date_from"`
	DateTo   string   `yaml:"date_to"`
}

// Load parses a seed file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse parses seed YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	for _, u := range f.Users {
		if u.ID == "" || u.Name == "" {
			return fmt.Errorf("user entries need id and name")
		}
		if u.Role != "teleoperator" && u.Role != "confirmateur" {
			return fmt.Errorf("user %s has unknown role %q", u.ID, u.Role)
		}
	}
	for _, s := range f.Statuses {
		if s.ID == "" || s.Name == "" {
			return fmt.Errorf("status entries need id and name")
		}
		if s.Type != "lead" && s.Type != "client" {
			return fmt.Errorf("status %s has unknown type %q", s.ID, s.Type)
		}
	}
	for _, g := range f.Grants {
		if g.UserID == "" || g.Component == "" || g.Action == "" {
			return fmt.Errorf("grant entries need user, component and action")
		}
	}
	for _, ff := range f.ForcedFilters {
		if ff.Type != "open" && ff.Type != "defined" {
			return fmt.Errorf("forced filter on %s has unknown type %q", ff.Column, ff.Type)
		}
	}
	return nil
}

// Apply writes the seed file's contents into the database, replacing the
// reference tables it covers. Contacts, notes and events are never touched.
func Apply(database *sql.DB, f *File) error {
	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	if len(f.Users) > 0 {
		if _, err := tx.Exec("DELETE FROM users"); err != nil {
			return fmt.Errorf("failed to clear users: %w", err)
		}
		for _, u := range f.Users {
			if _, err := tx.Exec(
				"INSERT INTO users (id, name, role, platform) VALUES (?, ?, ?, ?)",
				u.ID, u.Name, u.Role, nullable(u.Platform),
			); err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.ID, err)
			}
		}
	}

	if len(f.Statuses) > 0 {
		if _, err := tx.Exec("DELETE FROM statuses"); err != nil {
			return fmt.Errorf("failed to clear statuses: %w", err)
		}
		for _, s := range f.Statuses {
			color := s.Color
			if color == "" {
				color = "#cccccc"
			}
			if _, err := tx.Exec(
				"INSERT INTO statuses (id, name, color, type, client_default, is_event) VALUES (?, ?, ?, ?, ?, ?)",
				s.ID, s.Name, color, s.Type, s.ClientDefault, s.IsEvent,
			); err != nil {
				return fmt.Errorf("failed to seed status %s: %w", s.ID, err)
			}
		}
	}

	if len(f.Categories) > 0 {
		if _, err := tx.Exec("DELETE FROM note_categories"); err != nil {
			return fmt.Errorf("failed to clear note categories: %w", err)
		}
		for _, c := range f.Categories {
			if _, err := tx.Exec(
				"INSERT INTO note_categories (id, name) VALUES (?, ?)", c.ID, c.Name,
			); err != nil {
				return fmt.Errorf("failed to seed note category %s: %w", c.ID, err)
			}
		}
	}

	if len(f.Grants) > 0 {
		if _, err := tx.Exec("DELETE FROM grants"); err != nil {
			return fmt.Errorf("failed to clear grants: %w", err)
		}
		for _, g := range f.Grants {
			if _, err := tx.Exec(
				"INSERT INTO grants (user_id, component, action, field_name, status_id) VALUES (?, ?, ?, ?, ?)",
				g.UserID, g.Component, g.Action, nullable(g.FieldName), nullable(g.StatusID),
			); err != nil {
				return fmt.Errorf("failed to seed grant for %s: %w", g.UserID, err)
			}
		}
	}

	if len(f.ForcedFilters) > 0 {
		if _, err := tx.Exec("DELETE FROM forced_filters"); err != nil {
			return fmt.Errorf("failed to clear forced filters: %w", err)
		}
		for _, ff := range f.ForcedFilters {
			config, err := encodeConfig(ff)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(
				"INSERT INTO forced_filters (user_id, column_name, type, config) VALUES (?, ?, ?, ?)",
				ff.UserID, ff.Column, ff.Type, config,
			); err != nil {
				return fmt.Errorf("failed to seed forced filter on %s: %w", ff.Column, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}

// encodeConfig renders the forced filter's value in the JSON shape the
// settings repository reads back.
func encodeConfig(ff ForcedFilter) (string, error) {
	config := map[string]any{}
	if len(ff.Values) > 0 {
		config["values"] = ff.Values
	}
	if ff.Value != "" {
		config["value"] = ff.Value
	}
	if ff.DateFrom != "" {
		config["date_from"] = ff.DateFrom
	}
	if ff.DateTo != "" {
		config["date_to"] = ff.DateTo
	}
	data, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("failed to encode forced filter config for %s: %w", ff.Column, err)
	}
	return string(data), nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
