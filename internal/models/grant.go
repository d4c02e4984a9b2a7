package models

import "strings"

// GrantComponent identifies the feature a permission grant is scoped to.
type GrantComponent string

// GrantAction identifies the operation a permission grant allows.
type GrantAction string

// Grant components. statuses and fosse_statuses are two independent
// namespaces: the fosse one applies only to contacts with no assignees.
const (
	ComponentContactTabs  GrantComponent = "contact_tabs"
	ComponentStatuses     GrantComponent = "statuses"
	ComponentFosseStatus  GrantComponent = "fosse_statuses"
	ComponentFicheContact GrantComponent = "fiche_contact"
	ComponentPlanning     GrantComponent = "planning"
)

// Grant actions.
const (
	ActionView   GrantAction = "view"
	ActionEdit   GrantAction = "edit"
	ActionCreate GrantAction = "create"
	ActionDelete GrantAction = "delete"
)

// Grant represents one allow-rule from the current user's profile.
// There are no deny rules: absence of a matching grant means "not permitted",
// subject to the compatibility fallbacks implemented in core/permission.
// Grants are loaded once per session and never mutated.
type Grant struct {
	Component GrantComponent
	Action    GrantAction
	FieldName string
	StatusID  string
}

// NormalizeGrant trims raw grant fields loaded from storage. Unknown
// components or actions are kept as-is; they simply never match a capability
// check, which is the "malformed grant means no permission" rule.
func NormalizeGrant(g Grant) Grant {
	g.Component = GrantComponent(strings.TrimSpace(string(g.Component)))
	g.Action = GrantAction(strings.TrimSpace(string(g.Action)))
	g.FieldName = strings.TrimSpace(g.FieldName)
	g.StatusID = strings.TrimSpace(g.StatusID)
	return g
}
