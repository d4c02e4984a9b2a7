package primary

import "context"

// TransitionService defines the primary port for contact status changes.
type TransitionService interface {
	// ChangeStatus validates and executes one contact's status change:
	// permission and field validation first, then the sequential side
	// effects (contact update, optional event, note). Validation failures
	// abort before any write.
	ChangeStatus(ctx context.Context, req ChangeStatusRequest) (*ChangeStatusResponse, error)
}

// ChangeStatusRequest contains parameters for a status change.
type ChangeStatusRequest struct {
	ContactID      string
	TargetStatusID string

	// Note text is always mandatory; CategoryID is mandatory when note
	// categories are configured.
	Note       string
	CategoryID string

	// Event scheduling fields, read when the target status schedules an
	// event and the caller can create plannings.
	EventDate   string
	EventHour   string
	EventMinute string

	// Conversion carries the client data-capture form. Required when the
	// target is the client-default status.
	Conversion *ClientConversion
}

// ClientConversion is the data-capture form filled when a contact becomes a
// client. Every field is mandatory.
type ClientConversion struct {
	Platform        string
	Teleoperator    string
	StageName       string
	FirstName       string
	Email           string
	Phone           string
	ContractType    string
	Source          string
	CollectedAmount string
	Bonus           string
	PaymentMethod   string
}

// ChangeStatusResponse contains the result of a status change.
type ChangeStatusResponse struct {
	ContactID string
	StatusID  string
	EventID   string
	NoteID    string
}
