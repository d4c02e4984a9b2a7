// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// ContactRepository defines the secondary port for contact persistence.
type ContactRepository interface {
	// GetByID retrieves a contact by its ID.
	GetByID(ctx context.Context, id string) (*ContactRecord, error)

	// List retrieves one page of contacts matching the query and the total
	// number of matches across all pages.
	List(ctx context.Context, query ContactQuery) ([]*ContactRecord, int, error)

	// UpdateStatus applies the minimal status-change payload: the new status
	// and, when set, the acting teleoperator.
	UpdateStatus(ctx context.Context, id, statusID, teleoperatorID string) error

	// UpdateClient applies the client-conversion payload together with the
	// new status.
	UpdateClient(ctx context.Context, id, statusID string, fields ClientFields) error

	// AssignAgent sets or clears one assignee role. An empty userID clears
	// the assignment.
	AssignAgent(ctx context.Context, id, role, userID string) error
}

// ContactRecord represents a contact as stored in persistence.
// Timestamps are RFC3339 strings at this boundary.
type ContactRecord struct {
	ID             string
	StatusID       string
	TeleoperatorID string
	ConfirmateurID string
	FirstName      string
	LastName       string
	StageName      string
	Email          string
	Phone          string
	Platform       string
	Source         string
	ContractType   string
	CollectedAmt   string
	Bonus          string
	PaymentMethod  string
	LastCallAt     string
	CreatedAt      string
	UpdatedAt      string
}

// ClientFields is the client-conversion payload written when a contact
// becomes a client.
type ClientFields struct {
	Platform       string
	TeleoperatorID string
	StageName      string
	FirstName      string
	Email          string
	Phone          string
	ContractType   string
	Source         string
	CollectedAmt   string
	Bonus          string
	PaymentMethod  string
}

// ContactQuery contains the query options for listing contacts. Columns maps
// column names to their effective constraint; the repository applies
// multi-select columns as membership, date columns as ranges and the rest as
// substring match.
type ContactQuery struct {
	Page       int
	PageSize   int
	Search     string
	StatusType string
	Order      string
	Columns    map[string]ColumnConstraint
}

// ColumnConstraint is one column's effective filter at the persistence
// boundary. Exactly one of Values, Text or the From/To pair is meaningful,
// mirroring the column's fixed classification.
type ColumnConstraint struct {
	Values []string
	Text   string
	From   string
	To     string
}

// StatusRepository defines the secondary port for the status reference table.
type StatusRepository interface {
	// GetByID retrieves a status by its ID.
	GetByID(ctx context.Context, id string) (*StatusRecord, error)

	// List retrieves the whole status reference table.
	List(ctx context.Context) ([]*StatusRecord, error)
}

// StatusRecord represents a status reference entry as stored in persistence.
type StatusRecord struct {
	ID            string
	Name          string
	Color         string
	Type          string
	ClientDefault bool
	IsEvent       bool
}

// GrantRepository defines the secondary port for permission grants.
type GrantRepository interface {
	// ListForUser retrieves every grant of a user's profile. Grants are
	// loaded once per session and treated as immutable afterwards.
	ListForUser(ctx context.Context, userID string) ([]*GrantRecord, error)
}

// GrantRecord represents one permission grant as stored in persistence.
type GrantRecord struct {
	Component string
	Action    string
	FieldName string
	StatusID  string
}

// NoteRepository defines the secondary port for contact notes.
type NoteRepository interface {
	// Create persists a new note.
	Create(ctx context.Context, note *NoteRecord) error

	// ListCategories retrieves the configured note categories.
	ListCategories(ctx context.Context) ([]*NoteCategoryRecord, error)
}

// NoteRecord represents a contact note as stored in persistence.
type NoteRecord struct {
	ID         string
	ContactID  string
	UserID     string
	Text       string
	CategoryID string
	CreatedAt  string
}

// NoteCategoryRecord represents a note category reference entry.
type NoteCategoryRecord struct {
	ID   string
	Name string
}

// EventRepository defines the secondary port for planning events.
type EventRepository interface {
	// Create persists a new planning event.
	Create(ctx context.Context, event *EventRecord) error
}

// EventRecord represents a planning event as stored in persistence.
type EventRecord struct {
	ID        string
	ContactID string
	UserID    string
	Datetime  string
	Comment   string
}

// UserRepository defines the secondary port for the agent directory.
type UserRepository interface {
	// GetByID retrieves a user by its ID.
	GetByID(ctx context.Context, id string) (*UserRecord, error)

	// List retrieves the whole agent directory.
	List(ctx context.Context) ([]*UserRecord, error)
}

// UserRecord represents an assignable agent as stored in persistence.
type UserRecord struct {
	ID       string
	Name     string
	Role     string
	Platform string
}

// SettingsRepository defines the secondary port for administratively
// configured list settings.
type SettingsRepository interface {
	// ForcedFilters retrieves the forced filter configuration for a user.
	// The configuration is read-only to the core.
	ForcedFilters(ctx context.Context, userID string) ([]*ForcedFilterRecord, error)
}

// ForcedFilterRecord represents one forced column filter as configured.
// Type is "open" or "defined". Values carries multi-select entries, Value a
// free-text constraint and DateFrom/DateTo a range; only the shape matching
// the column's classification is read.
type ForcedFilterRecord struct {
	Column   string
	Type     string
	Values   []string
	Value    string
	DateFrom string
	DateTo   string
}
