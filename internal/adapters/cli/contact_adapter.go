// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/contactdesk/internal/ports/primary"
)

// ContactAdapter is a thin adapter that translates CLI operations to service
// calls. It depends only on the service interfaces, enabling easy testing
// with mocks.
type ContactAdapter struct {
	contacts    primary.ContactService
	transitions primary.TransitionService
	assignments primary.AssignmentService
	out         io.Writer
}

// NewContactAdapter creates a new ContactAdapter with the given services.
func NewContactAdapter(
	contacts primary.ContactService,
	transitions primary.TransitionService,
	assignments primary.AssignmentService,
	out io.Writer,
) *ContactAdapter {
	return &ContactAdapter{
		contacts:    contacts,
		transitions: transitions,
		assignments: assignments,
		out:         out,
	}
}

// List renders one page of the contact list. Status labels arrive already
// masked by the service; this adapter only colors them.
func (a *ContactAdapter) List(ctx context.Context, req primary.ListContactsRequest) error {
	page, err := a.contacts.ListContacts(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}

	if len(page.Contacts) == 0 {
		fmt.Fprintln(a.out, "No contacts found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-20s %-12s %-12s %-20s %s\n", "ID", "NAME", "PLATFORM", "SOURCE", "STATUS", "ASSIGNEES")
	fmt.Fprintln(a.out, strings.Repeat("─", 90))
	for _, c := range page.Contacts {
		name := strings.TrimSpace(c.FirstName + " " + c.LastName)
		fmt.Fprintf(a.out, "%-10s %-20s %-12s %-12s %-20s %s\n",
			c.ID, name, c.Platform, c.Source, statusCell(c), assigneeCell(c))
	}
	fmt.Fprintf(a.out, "\nPage %d — %d contact(s) total\n", page.Page, page.Total)

	return nil
}

// SetStatus runs a status change and prints the outcome.
func (a *ContactAdapter) SetStatus(ctx context.Context, req primary.ChangeStatusRequest) error {
	resp, err := a.transitions.ChangeStatus(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Contact %s moved to status %s\n", resp.ContactID, resp.StatusID)
	if resp.EventID != "" {
		fmt.Fprintf(a.out, "  Planning event %s created\n", resp.EventID)
	}
	fmt.Fprintf(a.out, "  Note %s recorded\n", resp.NoteID)
	return nil
}

// Assign runs a bulk assignment. When the plan requires confirmation and the
// caller has not confirmed, it prints the impact and stops.
func (a *ContactAdapter) Assign(ctx context.Context, req primary.BulkAssignRequest) error {
	if req.UserID == "" && !req.Confirmed {
		plan, err := a.assignments.PlanBulkAssign(ctx, req)
		if err != nil {
			return err
		}
		if plan.RequiresConfirmation {
			fmt.Fprintf(a.out, "%d contact(s) would end up with no assignee. Re-run with --confirm to proceed.\n",
				plan.WouldUnassign)
			return nil
		}
	}

	resp, err := a.assignments.BulkAssign(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ %d assigned, %d failed\n", resp.Succeeded, resp.Failed)
	for _, item := range resp.Items {
		if item.Err != "" {
			fmt.Fprintf(a.out, "  %s: %s\n", item.ContactID, item.Err)
		}
	}
	return nil
}

func statusCell(c *primary.Contact) string {
	label := c.StatusLabel
	if !c.StatusVisible {
		return color.New(color.FgHiBlack).Sprint(label)
	}
	return label
}

func assigneeCell(c *primary.Contact) string {
	if c.InFosse {
		return color.YellowString("fosse")
	}
	parts := []string{}
	if c.TeleoperatorID != "" {
		parts = append(parts, "op:"+c.TeleoperatorID)
	}
	if c.ConfirmateurID != "" {
		parts = append(parts, "conf:"+c.ConfirmateurID)
	}
	return strings.Join(parts, " ")
}
