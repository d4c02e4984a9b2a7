// Package statusview decides how a contact's status is displayed and whether
// the status affordance may be offered, given the session's permission
// resolver. The logic is a small state machine over three states.
package statusview

import (
	"github.com/example/contactdesk/internal/core/permission"
	"github.com/example/contactdesk/internal/models"
)

// State is the visibility state of one contact's status.
type State string

// Visibility states.
const (
	StateNoStatus State = "no_status"
	StateVisible  State = "visible"
	StateMasked   State = "masked"
)

// Masked display labels. The masking text depends on the status family so
// agents can still tell a client apart from a lead without seeing the status.
const (
	LabelNoStatus      = "-"
	LabelMaskedClient  = "CLIENT EN COURS"
	LabelMaskedLead    = "Indisponible - LEAD"
	LabelMaskedUnknown = "Indisponible"
)

// View is the computed visibility of one contact's status. CanView and
// CanEdit are exposed independently: a masked status can still have edit
// rights computed, but a caller must never offer the edit affordance unless
// both hold. NoStatus contacts only need the tab permission to be editable.
type View struct {
	State   State
	Label   string
	Color   string
	CanView bool
	CanEdit bool
}

// Editable reports whether a caller may offer the status-change affordance.
func (v View) Editable() bool {
	if v.State == StateNoStatus {
		return v.CanEdit
	}
	return v.CanView && v.CanEdit
}

// Evaluate computes the visibility view for one contact. status may be nil
// when the contact references an ID missing from the reference table.
// actorID is the current user: an assigned teleoperator or confirmateur is
// always granted view on their own contact, before any grant lookup.
func Evaluate(r *permission.Resolver, c models.Contact, status *models.Status, actorID string) View {
	if c.StatusID == "" {
		return View{
			State:   StateNoStatus,
			Label:   LabelNoStatus,
			CanView: true,
			CanEdit: r.CanEditInformationsTab(),
		}
	}

	fosse := c.InFosse()
	canView := isAssignee(c, actorID) || r.CanViewStatus(c.StatusID, fosse)
	canEdit := r.CanEditInformationsTab() && r.CanEditStatus(c.StatusID, fosse)

	if canView {
		label := c.StatusID
		color := ""
		if status != nil {
			label = status.Name
			color = status.Color
		}
		return View{
			State:   StateVisible,
			Label:   label,
			Color:   color,
			CanView: true,
			CanEdit: canEdit,
		}
	}

	return View{
		State:   StateMasked,
		Label:   maskedLabel(status),
		CanView: false,
		CanEdit: canEdit,
	}
}

func maskedLabel(status *models.Status) string {
	if status == nil {
		return LabelMaskedUnknown
	}
	switch status.Type {
	case models.StatusTypeClient:
		return LabelMaskedClient
	case models.StatusTypeLead:
		return LabelMaskedLead
	}
	return LabelMaskedUnknown
}

func isAssignee(c models.Contact, actorID string) bool {
	if actorID == "" {
		return false
	}
	return c.TeleoperatorID == actorID || c.ConfirmateurID == actorID
}
