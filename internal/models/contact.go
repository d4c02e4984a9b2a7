// Package models contains domain types for contactdesk entities.
// SQL persistence lives in internal/adapters/sqlite/*.go
package models

import "time"

// Contact represents a contact entity.
// This is the domain type used within the models package.
// For persistence, use the repository interfaces in ports/secondary.
type Contact struct {
	ID             string
	StatusID       string
	TeleoperatorID string
	ConfirmateurID string
	Fields         map[string]string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InFosse reports whether the contact sits in the unassigned pool.
// A contact is in the fosse iff it has neither a teleoperator nor a
// confirmateur; fosse contacts use the fosse_statuses permission namespace.
func (c Contact) InFosse() bool {
	return c.TeleoperatorID == "" && c.ConfirmateurID == ""
}

// Field returns a free-form field value, or "" when absent.
func (c Contact) Field(name string) string {
	if c.Fields == nil {
		return ""
	}
	return c.Fields[name]
}
