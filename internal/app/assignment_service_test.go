package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/contactdesk/internal/ports/primary"
	"github.com/example/contactdesk/internal/ports/secondary"
)

// ============================================================================
// Test Helper
// ============================================================================

type assignmentFixture struct {
	service     *AssignmentServiceImpl
	contactRepo *mockContactRepository
	userRepo    *mockUserRepository
	grantRepo   *mockGrantRepository
}

func newAssignmentFixture() *assignmentFixture {
	f := &assignmentFixture{
		contactRepo: newMockContactRepository(),
		userRepo:    newMockUserRepository(),
		grantRepo:   &mockGrantRepository{},
	}
	session := NewSession("user-1", f.grantRepo)
	f.service = NewAssignmentService(session, f.contactRepo, NewUserCache(f.userRepo))
	return f
}

// ============================================================================
// PlanBulkAssign Tests
// ============================================================================

func TestPlanBulkAssign_AssigningNeverRequiresConfirmation(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()

	plan, err := f.service.PlanBulkAssign(ctx, primary.BulkAssignRequest{
		ContactIDs: []string{"c-1", "c-2"},
		Role:       "teleoperator",
		UserID:     "op-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if plan.WouldUnassign != 0 || plan.RequiresConfirmation {
		t.Errorf("unexpected plan: %+v", plan)
	}
}

func TestPlanBulkAssign_CountsContactsDroppingIntoFosse(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()

	// c-1 has only a teleoperator: clearing it drops the contact into the
	// fosse. c-2 keeps its confirmateur.
	f.contactRepo.contacts["c-1"] = &secondary.ContactRecord{ID: "c-1", TeleoperatorID: "op-1"}
	f.contactRepo.contacts["c-2"] = &secondary.ContactRecord{ID: "c-2", TeleoperatorID: "op-1", ConfirmateurID: "conf-1"}

	plan, err := f.service.PlanBulkAssign(ctx, primary.BulkAssignRequest{
		ContactIDs: []string{"c-1", "c-2"},
		Role:       "teleoperator",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if plan.WouldUnassign != 1 {
		t.Errorf("expected 1 contact to drop into the fosse, got %d", plan.WouldUnassign)
	}
	if !plan.RequiresConfirmation {
		t.Error("expected confirmation to be required")
	}
}

func TestPlanBulkAssign_UnknownRole(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()

	_, err := f.service.PlanBulkAssign(ctx, primary.BulkAssignRequest{
		ContactIDs: []string{"c-1"},
		Role:       "manager",
	})
	if err == nil || !strings.Contains(err.Error(), "unknown assignment role") {
		t.Fatalf("expected role error, got %v", err)
	}
}

// ============================================================================
// BulkAssign Tests
// ============================================================================

func TestBulkAssign_Success(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()

	f.userRepo.users["op-1"] = &secondary.UserRecord{ID: "op-1", Role: "teleoperator"}
	f.contactRepo.contacts["c-1"] = &secondary.ContactRecord{ID: "c-1", TeleoperatorID: "user-1"}
	f.contactRepo.contacts["c-2"] = &secondary.ContactRecord{ID: "c-2", TeleoperatorID: "user-1"}

	resp, err := f.service.BulkAssign(ctx, primary.BulkAssignRequest{
		ContactIDs: []string{"c-1", "c-2"},
		Role:       "teleoperator",
		UserID:     "op-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Succeeded != 2 || resp.Failed != 0 {
		t.Errorf("unexpected counts: succeeded=%d failed=%d", resp.Succeeded, resp.Failed)
	}
	if len(resp.Items) != 2 || resp.Items[0].ContactID != "c-1" || resp.Items[1].ContactID != "c-2" {
		t.Errorf("expected items in request order, got %+v", resp.Items)
	}
	if f.contactRepo.assignCalls["c-1"] != "op-1" || f.contactRepo.assignCalls["c-2"] != "op-1" {
		t.Errorf("unexpected assignments: %v", f.contactRepo.assignCalls)
	}
}

func TestBulkAssign_UnknownUser(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()

	_, err := f.service.BulkAssign(ctx, primary.BulkAssignRequest{
		ContactIDs: []string{"c-1"},
		Role:       "teleoperator",
		UserID:     "ghost",
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected unknown-user error, got %v", err)
	}
}

func TestBulkAssign_RoleMismatch(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()

	f.userRepo.users["conf-1"] = &secondary.UserRecord{ID: "conf-1", Role: "confirmateur"}

	_, err := f.service.BulkAssign(ctx, primary.BulkAssignRequest{
		ContactIDs: []string{"c-1"},
		Role:       "teleoperator",
		UserID:     "conf-1",
	})
	if err == nil || !strings.Contains(err.Error(), "is not a teleoperator") {
		t.Fatalf("expected role mismatch error, got %v", err)
	}
}

func TestBulkAssign_ClearingRequiresConfirmation(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()

	f.contactRepo.contacts["c-1"] = &secondary.ContactRecord{ID: "c-1", TeleoperatorID: "user-1"}

	_, err := f.service.BulkAssign(ctx, primary.BulkAssignRequest{
		ContactIDs: []string{"c-1"},
		Role:       "teleoperator",
	})
	if !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if len(f.contactRepo.assignCalls) != 0 {
		t.Error("expected no assignments before confirmation")
	}
}

func TestBulkAssign_ConfirmedClearProceeds(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()

	f.contactRepo.contacts["c-1"] = &secondary.ContactRecord{ID: "c-1", TeleoperatorID: "user-1"}

	resp, err := f.service.BulkAssign(ctx, primary.BulkAssignRequest{
		ContactIDs: []string{"c-1"},
		Role:       "teleoperator",
		Confirmed:  true,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Succeeded != 1 {
		t.Errorf("expected 1 success, got %d", resp.Succeeded)
	}
	if got, ok := f.contactRepo.assignCalls["c-1"]; !ok || got != "" {
		t.Errorf("expected cleared assignment, got %v", f.contactRepo.assignCalls)
	}
}

func TestBulkAssign_ItemsFailIndependently(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()

	f.userRepo.users["op-1"] = &secondary.UserRecord{ID: "op-1", Role: "teleoperator"}
	f.contactRepo.contacts["c-1"] = &secondary.ContactRecord{ID: "c-1", TeleoperatorID: "user-1"}
	// c-2 does not exist; its item fails while c-1 succeeds.

	resp, err := f.service.BulkAssign(ctx, primary.BulkAssignRequest{
		ContactIDs: []string{"c-1", "c-2"},
		Role:       "teleoperator",
		UserID:     "op-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Succeeded != 1 || resp.Failed != 1 {
		t.Errorf("unexpected counts: succeeded=%d failed=%d", resp.Succeeded, resp.Failed)
	}
	if resp.Items[1].Err == "" {
		t.Error("expected an error on the missing contact's item")
	}
}

func TestBulkAssign_PermissionDeniedPerItem(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()

	// A statuses edit grant exists for st-allowed only, so the contact on
	// st-blocked fails its per-item permission check.
	f.grantRepo.grants = []*secondary.GrantRecord{
		{Component: "statuses", Action: "edit", StatusID: "st-allowed"},
	}
	f.userRepo.users["op-1"] = &secondary.UserRecord{ID: "op-1", Role: "teleoperator"}
	f.contactRepo.contacts["c-1"] = &secondary.ContactRecord{ID: "c-1", StatusID: "st-allowed", TeleoperatorID: "user-1"}
	f.contactRepo.contacts["c-2"] = &secondary.ContactRecord{ID: "c-2", StatusID: "st-blocked", TeleoperatorID: "user-1"}

	resp, err := f.service.BulkAssign(ctx, primary.BulkAssignRequest{
		ContactIDs: []string{"c-1", "c-2"},
		Role:       "teleoperator",
		UserID:     "op-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Succeeded != 1 || resp.Failed != 1 {
		t.Errorf("unexpected counts: succeeded=%d failed=%d", resp.Succeeded, resp.Failed)
	}
	if !strings.Contains(resp.Items[1].Err, "permission") {
		t.Errorf("expected permission error on second item, got %q", resp.Items[1].Err)
	}
	if _, assigned := f.contactRepo.assignCalls["c-2"]; assigned {
		t.Error("expected blocked contact to stay unassigned")
	}
}
