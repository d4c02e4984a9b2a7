package primary

import "context"

// AssignmentService defines the primary port for bulk agent assignment.
type AssignmentService interface {
	// PlanBulkAssign pre-computes the impact of a bulk assignment without
	// mutating anything: how many contacts would end up fully unassigned.
	PlanBulkAssign(ctx context.Context, req BulkAssignRequest) (*BulkAssignPlan, error)

	// BulkAssign executes the assignment across all requested contacts and
	// reports a per-item result list. Items fail independently; a failure
	// on one contact does not undo the others.
	BulkAssign(ctx context.Context, req BulkAssignRequest) (*BulkAssignResponse, error)
}

// BulkAssignRequest contains parameters for a bulk assignment.
type BulkAssignRequest struct {
	ContactIDs []string
	Role       string // teleoperator or confirmateur
	UserID     string // empty clears the role

	// Confirmed must be set when the plan reports contacts that would drop
	// into the fosse.
	Confirmed bool
}

// BulkAssignPlan is the pre-computed impact of a bulk assignment.
type BulkAssignPlan struct {
	WouldUnassign        int
	RequiresConfirmation bool
}

// BulkAssignItem is the outcome for one contact of a bulk assignment.
type BulkAssignItem struct {
	ContactID string
	Err       string
}

// BulkAssignResponse reports per-item outcomes of a bulk assignment.
type BulkAssignResponse struct {
	Succeeded int
	Failed    int
	Items     []BulkAssignItem
}
