package models

// Status represents one entry of the status reference table. The core only
// reads statuses; the table is owned by the backoffice.
type Status struct {
	ID            string
	Name          string
	Color         string
	Type          string
	ClientDefault bool
	IsEvent       bool
}

// Status type constants
const (
	StatusTypeLead   = "lead"
	StatusTypeClient = "client"
)
