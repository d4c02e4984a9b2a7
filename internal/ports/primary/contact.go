// Package primary defines the primary ports (driving adapters) of the
// application: the service interfaces the CLI and HTTP surfaces consume.
package primary

import "context"

// ContactService defines the primary port for the contact list screen. One
// service instance owns one list session: its filter layers, its page and
// its reload guard.
type ContactService interface {
	// ListContacts runs the effective query and returns one page of
	// contacts with their computed status views. A call arriving while a
	// reload is in flight is dropped, not queued.
	ListContacts(ctx context.Context, req ListContactsRequest) (*ContactPage, error)

	// SetColumnFilter stores a draft filter for a column.
	SetColumnFilter(column string, filter FilterInput) error

	// ApplyColumnFilter applies one column's draft filter. Forced columns
	// reject.
	ApplyColumnFilter(column string) error

	// ApplyFilters applies every draft filter. Forced columns reject.
	ApplyFilters() error

	// ResetColumnFilter clears one column's filter. Forced columns reject.
	ResetColumnFilter(column string) error

	// ResetFilters clears all user filters; defined forced entries are
	// re-seeded, never removed.
	ResetFilters()

	// EffectiveFilters returns the filters the next query will use.
	EffectiveFilters() map[string]FilterInput
}

// ListContactsRequest contains the non-filter query options of a list call.
type ListContactsRequest struct {
	Page       int
	PageSize   int
	Search     string
	StatusType string
	Order      string
}

// FilterInput is a filter value at the port boundary. Values carries
// multi-select entries, Text a free-text constraint, From/To a date range;
// the column's fixed classification decides which shape is read.
type FilterInput struct {
	Values []string
	Text   string
	From   string
	To     string
}

// ContactPage is one page of the contact list.
type ContactPage struct {
	Contacts []*Contact
	Total    int
	Page     int
}

// Contact represents a contact at the port boundary, with its status view
// already computed against the session's permissions.
type Contact struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Platform       string
	Source         string
	TeleoperatorID string
	ConfirmateurID string
	InFosse        bool
	CreatedAt      string
	UpdatedAt      string

	// Status view fields. StatusLabel is the displayed text, already masked
	// when the session may not see the real status. StatusEditable reports
	// whether the change affordance may be offered.
	StatusID       string
	StatusLabel    string
	StatusColor    string
	StatusVisible  bool
	StatusEditable bool
}
