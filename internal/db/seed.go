package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with development fixtures: a small
// agent team, the standard status ladder and a handful of contacts spread
// across assigned and fosse states.
func SeedFixtures(database *sql.DB) error {
	users := []struct{ id, name, role, platform string }{
		{"USR-001", "Marc Delorme", "teleoperator", "onlyfans"},
		{"USR-002", "Sophie Renard", "teleoperator", "mym"},
		{"USR-003", "Karim Benali", "confirmateur", ""},
	}
	for _, u := range users {
		if _, err := database.Exec(
			"INSERT INTO users (id, name, role, platform) VALUES (?, ?, ?, ?)",
			u.id, u.name, u.role, nullable(u.platform),
		); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	statuses := []struct {
		id, name, color, statusType string
		clientDefault, isEvent      bool
	}{
		{"ST-NEW", "Nouveau", "#4caf50", "lead", false, false},
		{"ST-RAPPEL", "A rappeler", "#ff9800", "lead", false, false},
		{"ST-RDV", "RDV fixé", "#2196f3", "lead", false, true},
		{"ST-NRP", "NRP", "#9e9e9e", "lead", false, false},
		{"ST-CLIENT", "Client", "#673ab7", "client", true, false},
		{"ST-CLIENT-SUIVI", "Client suivi", "#3f51b5", "client", false, false},
	}
	for _, s := range statuses {
		if _, err := database.Exec(
			"INSERT INTO statuses (id, name, color, type, client_default, is_event) VALUES (?, ?, ?, ?, ?, ?)",
			s.id, s.name, s.color, s.statusType, s.clientDefault, s.isEvent,
		); err != nil {
			return fmt.Errorf("seed statuses: %w", err)
		}
	}

	categories := []struct{ id, name string }{
		{"CAT-001", "Suivi"},
		{"CAT-002", "Relance"},
		{"CAT-003", "Conversion"},
	}
	for _, c := range categories {
		if _, err := database.Exec(
			"INSERT INTO note_categories (id, name) VALUES (?, ?)",
			c.id, c.name,
		); err != nil {
			return fmt.Errorf("seed note categories: %w", err)
		}
	}

	contacts := []struct {
		id, statusID, teleoperator, confirmateur string
		firstName, lastName, platform, source    string
	}{
		{"CT-001", "ST-NEW", "USR-001", "", "Ana", "Moreau", "onlyfans", "facebook"},
		{"CT-002", "ST-RAPPEL", "USR-001", "USR-003", "Lea", "Fontaine", "onlyfans", "instagram"},
		{"CT-003", "ST-CLIENT", "USR-002", "USR-003", "Mia", "Garnier", "mym", "tiktok"},
		{"CT-004", "ST-NEW", "", "", "Eva", "Lambert", "mym", "facebook"},
		{"CT-005", "", "", "", "Zoe", "Perrin", "onlyfans", "instagram"},
	}
	for _, c := range contacts {
		if _, err := database.Exec(
			`INSERT INTO contacts (id, status_id, teleoperator_id, confirmateur_id, first_name, last_name, platform, source, email, phone)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.id, nullable(c.statusID), nullable(c.teleoperator), nullable(c.confirmateur),
			c.firstName, c.lastName, c.platform, c.source,
			fmt.Sprintf("%s.%s@example.com", c.firstName, c.lastName), "0600000000",
		); err != nil {
			return fmt.Errorf("seed contacts: %w", err)
		}
	}

	// USR-001 gets a typical teleoperator profile: full tab access plus
	// lead-status grants in both the assigned and fosse namespaces.
	grants := []struct{ userID, component, action, fieldName, statusID string }{
		{"USR-001", "contact_tabs", "view", "informations", ""},
		{"USR-001", "contact_tabs", "edit", "informations", ""},
		{"USR-001", "statuses", "view", "", "ST-NEW"},
		{"USR-001", "statuses", "edit", "", "ST-NEW"},
		{"USR-001", "statuses", "view", "", "ST-RAPPEL"},
		{"USR-001", "statuses", "edit", "", "ST-RAPPEL"},
		{"USR-001", "statuses", "view", "", "ST-RDV"},
		{"USR-001", "fosse_statuses", "view", "", "ST-NEW"},
		{"USR-001", "fosse_statuses", "edit", "", "ST-NEW"},
		{"USR-001", "planning", "create", "", ""},
		{"USR-003", "contact_tabs", "view", "informations", ""},
		{"USR-003", "statuses", "view", "", "ST-CLIENT"},
		{"USR-003", "statuses", "edit", "", "ST-CLIENT"},
	}
	for _, g := range grants {
		if _, err := database.Exec(
			"INSERT INTO grants (user_id, component, action, field_name, status_id) VALUES (?, ?, ?, ?, ?)",
			g.userID, g.component, g.action, nullable(g.fieldName), nullable(g.statusID),
		); err != nil {
			return fmt.Errorf("seed grants: %w", err)
		}
	}

	// Sophie's list is pinned to her platform by an administrator.
	if _, err := database.Exec(
		"INSERT INTO forced_filters (user_id, column_name, type, config) VALUES (?, ?, ?, ?)",
		"USR-002", "platform", "defined", `{"values":["mym"]}`,
	); err != nil {
		return fmt.Errorf("seed forced filters: %w", err)
	}

	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
