// Package permission contains the pure capability logic derived from a user's
// permission grants. Resolver methods never return errors: a missing or
// malformed grant is simply "no permission".
package permission

import (
	"strings"

	"github.com/example/contactdesk/internal/models"
)

// InformationsTab is the tab name carried by contact_tabs grants for the
// contact details pane.
const InformationsTab = "informations"

// uiFieldToBackend maps UI field names to the backend field names carried by
// fiche_contact grants. The table is fixed: a UI field missing from it can
// never match an explicit grant.
var uiFieldToBackend = map[string]string{
	"firstName":       "first_name",
	"lastName":        "last_name",
	"email":           "email",
	"phone":           "telephone",
	"platform":        "plateforme",
	"stageName":       "nom_de_scene",
	"contractType":    "type_contrat",
	"source":          "source",
	"collectedAmount": "montant_collecte",
	"bonus":           "bonus",
	"paymentMethod":   "moyen_paiement",
	"teleoperator":    "teleoperateur",
	"confirmateur":    "confirmateur",
}

// Resolver answers capability queries against an immutable grant set.
type Resolver struct {
	grants []models.Grant

	hasTabGrants       bool
	hasFicheEditGrants bool
}

// NewResolver builds a resolver over the session's grant set. Grants are
// normalized once here so every later lookup compares trimmed values.
func NewResolver(grants []models.Grant) *Resolver {
	r := &Resolver{grants: make([]models.Grant, 0, len(grants))}
	for _, g := range grants {
		g = models.NormalizeGrant(g)
		r.grants = append(r.grants, g)
		if g.Component == models.ComponentContactTabs {
			r.hasTabGrants = true
		}
		if g.Component == models.ComponentFicheContact && g.Action == models.ActionEdit {
			r.hasFicheEditGrants = true
		}
	}
	return r
}

// CanViewTab reports whether the contact tab may be shown. Profiles created
// before tab permissions existed carry no contact_tabs grants at all; those
// default to allow.
func (r *Resolver) CanViewTab() bool {
	if !r.hasTabGrants {
		return true
	}
	return r.hasTabGrant(models.ActionView)
}

// CanEditInformationsTab reports whether the informations tab may be edited.
// Same default-allow-when-absent rule as CanViewTab.
func (r *Resolver) CanEditInformationsTab() bool {
	if !r.hasTabGrants {
		return true
	}
	return r.hasTabGrant(models.ActionEdit)
}

func (r *Resolver) hasTabGrant(action models.GrantAction) bool {
	for _, g := range r.grants {
		if g.Component != models.ComponentContactTabs || g.Action != action {
			continue
		}
		if g.FieldName == "" || g.FieldName == InformationsTab {
			return true
		}
	}
	return false
}

// CanViewStatus reports whether the status may be shown. fosse selects the
// fosse_statuses namespace instead of statuses.
func (r *Resolver) CanViewStatus(statusID string, fosse bool) bool {
	return r.hasStatusGrant(models.ActionView, statusID, fosse)
}

// CanEditStatus reports whether the status may be changed away from.
func (r *Resolver) CanEditStatus(statusID string, fosse bool) bool {
	return r.hasStatusGrant(models.ActionEdit, statusID, fosse)
}

func (r *Resolver) hasStatusGrant(action models.GrantAction, statusID string, fosse bool) bool {
	component := models.ComponentStatuses
	if fosse {
		component = models.ComponentFosseStatus
	}
	want := strings.TrimSpace(statusID)
	if want == "" {
		return false
	}

	// Exact match first; legacy profiles stored status IDs with inconsistent
	// casing, so fall back to a case-insensitive pass.
	for _, g := range r.grants {
		if g.Component == component && g.Action == action && g.StatusID == want {
			return true
		}
	}
	for _, g := range r.grants {
		if g.Component == component && g.Action == action && strings.EqualFold(g.StatusID, want) {
			return true
		}
	}
	return false
}

// CanEditContact reports whether the contact record itself may be edited:
// the informations tab must be editable, and when the contact carries a
// status, that status must be editable too. A contact with no status only
// needs the tab permission.
func (r *Resolver) CanEditContact(c models.Contact) bool {
	if !r.CanEditInformationsTab() {
		return false
	}
	if c.StatusID == "" {
		return true
	}
	return r.CanEditStatus(c.StatusID, c.InFosse())
}

// CanCreatePlanning reports whether the user may schedule planning events.
func (r *Resolver) CanCreatePlanning() bool {
	for _, g := range r.grants {
		if g.Component == models.ComponentPlanning && g.Action == models.ActionCreate {
			return true
		}
	}
	return false
}

// CanEditField reports whether a single UI field may be edited during a
// status change from currentStatusID to newStatusID.
//
// The fallback rules are asymmetric on purpose and must stay that way:
// tab grants default-allow when wholly absent, while field grants
// default-deny once any fiche_contact edit grant exists but default-allow
// when none exist at all.
func (r *Resolver) CanEditField(field, currentStatusID, newStatusID string, fosse bool) bool {
	if !r.CanEditInformationsTab() {
		return false
	}
	if !r.CanEditStatus(currentStatusID, fosse) && !r.CanViewStatus(newStatusID, fosse) {
		return false
	}
	if !r.hasFicheEditGrants {
		return true
	}
	backend, ok := uiFieldToBackend[field]
	if !ok {
		return false
	}
	for _, g := range r.grants {
		if g.Component == models.ComponentFicheContact && g.Action == models.ActionEdit && g.FieldName == backend {
			return true
		}
	}
	return false
}
