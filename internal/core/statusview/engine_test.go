package statusview

import (
	"testing"

	"github.com/example/contactdesk/internal/core/permission"
	"github.com/example/contactdesk/internal/models"
)

func emptyResolver() *permission.Resolver {
	// A single status grant for an unrelated status: status view/edit lookups
	// all miss, and the tab default-allow fallback stays inactive for nothing.
	return permission.NewResolver([]models.Grant{
		{Component: models.ComponentStatuses, Action: models.ActionView, StatusID: "OTHER"},
	})
}

func TestEvaluate_NoStatus(t *testing.T) {
	r := permission.NewResolver(nil)
	c := models.Contact{ID: "C1", TeleoperatorID: "U1"}

	v := Evaluate(r, c, nil, "")

	if v.State != StateNoStatus {
		t.Errorf("expected state no_status, got %s", v.State)
	}
	if v.Label != "-" {
		t.Errorf("expected label '-', got %q", v.Label)
	}
	if !v.CanEdit {
		t.Error("expected no-status contact editable via tab default-allow")
	}
	if !v.Editable() {
		t.Error("expected Editable true for no-status contact")
	}
}

func TestEvaluate_MaskedClientLabel(t *testing.T) {
	c := models.Contact{ID: "C1", StatusID: "S9", TeleoperatorID: "U1"}
	st := &models.Status{ID: "S9", Name: "Signé", Type: models.StatusTypeClient}

	v := Evaluate(emptyResolver(), c, st, "")

	if v.State != StateMasked {
		t.Fatalf("expected state masked, got %s", v.State)
	}
	if v.Label != "CLIENT EN COURS" {
		t.Errorf("expected label 'CLIENT EN COURS', got %q", v.Label)
	}
}

func TestEvaluate_MaskedLeadLabel(t *testing.T) {
	c := models.Contact{ID: "C1", StatusID: "S9", TeleoperatorID: "U1"}
	st := &models.Status{ID: "S9", Name: "Rappel", Type: models.StatusTypeLead}

	v := Evaluate(emptyResolver(), c, st, "")

	if v.Label != "Indisponible - LEAD" {
		t.Errorf("expected label 'Indisponible - LEAD', got %q", v.Label)
	}
}

func TestEvaluate_MaskedUnknownTypeLabel(t *testing.T) {
	c := models.Contact{ID: "C1", StatusID: "S9", TeleoperatorID: "U1"}

	v := Evaluate(emptyResolver(), c, nil, "")

	if v.Label != "Indisponible" {
		t.Errorf("expected label 'Indisponible', got %q", v.Label)
	}
}

func TestEvaluate_VisibleStatus(t *testing.T) {
	r := permission.NewResolver([]models.Grant{
		{Component: models.ComponentStatuses, Action: models.ActionView, StatusID: "S1"},
		{Component: models.ComponentStatuses, Action: models.ActionEdit, StatusID: "S1"},
	})
	c := models.Contact{ID: "C1", StatusID: "S1", TeleoperatorID: "U1"}
	st := &models.Status{ID: "S1", Name: "Nouveau", Color: "#00aa00", Type: models.StatusTypeLead}

	v := Evaluate(r, c, st, "")

	if v.State != StateVisible {
		t.Fatalf("expected state visible, got %s", v.State)
	}
	if v.Label != "Nouveau" {
		t.Errorf("expected real status name, got %q", v.Label)
	}
	if v.Color != "#00aa00" {
		t.Errorf("expected status color, got %q", v.Color)
	}
	if !v.Editable() {
		t.Error("expected visible status with edit grant to be editable")
	}
}

func TestEvaluate_MaskedNeverEditableThroughAffordance(t *testing.T) {
	// Edit grant but no view grant: CanEdit is still computed true, but the
	// affordance must stay off.
	r := permission.NewResolver([]models.Grant{
		{Component: models.ComponentStatuses, Action: models.ActionEdit, StatusID: "S1"},
	})
	c := models.Contact{ID: "C1", StatusID: "S1", TeleoperatorID: "U1"}

	v := Evaluate(r, c, nil, "")

	if v.State != StateMasked {
		t.Fatalf("expected state masked, got %s", v.State)
	}
	if !v.CanEdit {
		t.Error("expected CanEdit computed independently of masking")
	}
	if v.Editable() {
		t.Error("masked status must not be editable through the affordance")
	}
}

func TestEvaluate_AssigneeIdentityOverride(t *testing.T) {
	c := models.Contact{ID: "C1", StatusID: "S1", TeleoperatorID: "U7"}
	st := &models.Status{ID: "S1", Name: "Rappel", Type: models.StatusTypeLead}

	v := Evaluate(emptyResolver(), c, st, "U7")

	if v.State != StateVisible {
		t.Fatalf("expected assigned teleoperator to see the status, got %s", v.State)
	}
	if v.Label != "Rappel" {
		t.Errorf("expected real name for assignee, got %q", v.Label)
	}

	// Confirmateur assignment works the same way.
	c2 := models.Contact{ID: "C2", StatusID: "S1", ConfirmateurID: "U7"}
	if got := Evaluate(emptyResolver(), c2, st, "U7"); got.State != StateVisible {
		t.Errorf("expected assigned confirmateur to see the status, got %s", got.State)
	}
}

func TestEvaluate_FosseContactUsesFosseNamespace(t *testing.T) {
	r := permission.NewResolver([]models.Grant{
		{Component: models.ComponentFosseStatus, Action: models.ActionView, StatusID: "S1"},
	})
	fosse := models.Contact{ID: "C1", StatusID: "S1"}
	st := &models.Status{ID: "S1", Name: "Nouveau", Type: models.StatusTypeLead}

	if got := Evaluate(r, fosse, st, ""); got.State != StateVisible {
		t.Errorf("expected fosse grant to reveal status of fosse contact, got %s", got.State)
	}

	assigned := models.Contact{ID: "C2", StatusID: "S1", TeleoperatorID: "U1"}
	if got := Evaluate(r, assigned, st, ""); got.State != StateMasked {
		t.Errorf("expected fosse grant not to apply to assigned contact, got %s", got.State)
	}
}
