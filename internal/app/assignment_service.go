package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/example/contactdesk/internal/models"
	"github.com/example/contactdesk/internal/ports/primary"
	"github.com/example/contactdesk/internal/ports/secondary"
)

// ErrConfirmationRequired is returned when a bulk assignment would drop
// contacts into the fosse and the caller has not confirmed.
var ErrConfirmationRequired = errors.New("assignment would unassign contacts, confirmation required")

// AssignmentServiceImpl implements the AssignmentService interface.
type AssignmentServiceImpl struct {
	session     *Session
	contactRepo secondary.ContactRepository
	userCache   *UserCache
}

// NewAssignmentService creates a new AssignmentService with injected
// dependencies.
func NewAssignmentService(session *Session, contactRepo secondary.ContactRepository, userCache *UserCache) *AssignmentServiceImpl {
	return &AssignmentServiceImpl{session: session, contactRepo: contactRepo, userCache: userCache}
}

// PlanBulkAssign counts how many of the requested contacts would end up with
// neither assignee if the request ran. Only a clearing request can do that:
// assigning a user never empties a role.
func (s *AssignmentServiceImpl) PlanBulkAssign(ctx context.Context, req primary.BulkAssignRequest) (*primary.BulkAssignPlan, error) {
	if err := validRole(req.Role); err != nil {
		return nil, err
	}

	plan := &primary.BulkAssignPlan{}
	if req.UserID != "" {
		return plan, nil
	}

	for _, id := range req.ContactIDs {
		record, err := s.contactRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load contact %s: %w", id, err)
		}
		if otherRoleEmpty(record, req.Role) {
			plan.WouldUnassign++
		}
	}
	plan.RequiresConfirmation = plan.WouldUnassign > 0
	return plan, nil
}

// BulkAssign applies one role assignment across all requested contacts.
// Contacts are processed concurrently and fail independently; the response
// lists one item per requested contact, in request order.
func (s *AssignmentServiceImpl) BulkAssign(ctx context.Context, req primary.BulkAssignRequest) (*primary.BulkAssignResponse, error) {
	if err := validRole(req.Role); err != nil {
		return nil, err
	}

	if req.UserID != "" {
		users, err := s.userCache.GetOrRefresh(ctx)
		if err != nil {
			return nil, err
		}
		user, ok := users[req.UserID]
		if !ok {
			return nil, fmt.Errorf("user %s not found", req.UserID)
		}
		if user.Role != req.Role {
			return nil, fmt.Errorf("user %s is not a %s", req.UserID, req.Role)
		}
	} else if !req.Confirmed {
		plan, err := s.PlanBulkAssign(ctx, req)
		if err != nil {
			return nil, err
		}
		if plan.RequiresConfirmation {
			return nil, ErrConfirmationRequired
		}
	}

	resolver, err := s.session.Resolver(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]primary.BulkAssignItem, len(req.ContactIDs))
	var wg sync.WaitGroup
	for i, id := range req.ContactIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			items[i] = primary.BulkAssignItem{ContactID: id}

			record, err := s.contactRepo.GetByID(ctx, id)
			if err != nil {
				items[i].Err = fmt.Sprintf("failed to load contact: %v", err)
				return
			}
			if !resolver.CanEditContact(recordToContact(record)) {
				items[i].Err = "you do not have permission to edit this contact"
				return
			}
			if err := s.contactRepo.AssignAgent(ctx, id, req.Role, req.UserID); err != nil {
				items[i].Err = fmt.Sprintf("failed to assign: %v", err)
			}
		}(i, id)
	}
	wg.Wait()

	resp := &primary.BulkAssignResponse{Items: items}
	for _, item := range items {
		if item.Err == "" {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	return resp, nil
}

func validRole(role string) error {
	if role != models.RoleTeleoperator && role != models.RoleConfirmateur {
		return fmt.Errorf("unknown assignment role: %s", role)
	}
	return nil
}

// otherRoleEmpty reports whether clearing the given role would leave the
// contact with no assignee at all.
func otherRoleEmpty(record *secondary.ContactRecord, role string) bool {
	if role == models.RoleTeleoperator {
		return record.ConfirmateurID == ""
	}
	return record.TeleoperatorID == ""
}

// Ensure AssignmentServiceImpl implements the interface
var _ primary.AssignmentService = (*AssignmentServiceImpl)(nil)
