// Package transition contains the pure validation logic for contact status
// changes. Guards evaluate preconditions without side effects; the service
// layer runs them before any repository call, so a rejected change never
// produces a partial write.
package transition

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// ChangeContext provides context for status change guards. The permission
// bits are resolved by the caller from the session resolver so the guard
// stays pure.
type ChangeContext struct {
	Note            string
	CategoryID      string
	CategoriesExist bool

	StatusChanging       bool
	CanEditCurrentStatus bool
	CanViewNewStatus     bool
	CanEditContact       bool

	TargetIsEvent     bool
	CanCreatePlanning bool
	EventDate         string
	EventHour         string
	EventMinute       string
}

// CanChangeStatus evaluates the ordered preconditions of a status change and
// stops at the first failure.
// Rules, in order:
//   - a note is always mandatory
//   - a category is mandatory when categories exist
//   - event date plus a complete hour and minute are mandatory when the
//     target status schedules an event and the caller can create plannings
//   - changing status needs edit on the current status and view on the new
//     one; keeping the status needs only contact edit permission
func CanChangeStatus(ctx ChangeContext) GuardResult {
	if strings.TrimSpace(ctx.Note) == "" {
		return GuardResult{Allowed: false, Reason: "a note is required to change the status"}
	}

	if ctx.CategoriesExist && ctx.CategoryID == "" {
		return GuardResult{Allowed: false, Reason: "a note category is required"}
	}

	if ctx.TargetIsEvent && ctx.CanCreatePlanning {
		if strings.TrimSpace(ctx.EventDate) == "" {
			return GuardResult{Allowed: false, Reason: "an event date is required for this status"}
		}
		if ctx.EventHour == "" || ctx.EventMinute == "" {
			return GuardResult{Allowed: false, Reason: "a complete event hour and minute are required for this status"}
		}
	}

	if ctx.StatusChanging {
		if !ctx.CanEditCurrentStatus {
			return GuardResult{Allowed: false, Reason: "you are not allowed to leave the current status"}
		}
		if !ctx.CanViewNewStatus {
			return GuardResult{Allowed: false, Reason: "you are not allowed to enter the selected status"}
		}
	} else if !ctx.CanEditContact {
		return GuardResult{Allowed: false, Reason: "you are not allowed to edit this contact"}
	}

	return GuardResult{Allowed: true}
}

// ConversionFields is the fixed set of data-capture fields required when a
// contact becomes a client.
type ConversionFields struct {
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

// FieldErrors collects per-field validation failures for the client
// conversion form. Unlike the ordered guards, conversion failures are
// reported together rather than short-circuited.
type FieldErrors map[string]string

// Error renders the collected failures field by field, sorted for stable
// output.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "client conversion incomplete: " + strings.Join(parts, "; ")
}

// ValidateConversion checks every mandatory client-conversion field and
// returns the full map of failures, or nil when the form is complete.
func ValidateConversion(f ConversionFields) FieldErrors {
	required := []struct{ name, value string }{
		{"platform", f.Platform},
		{"teleoperator", f.Teleoperator},
		{"stageName", f.StageName},
		{"firstName", f.FirstName},
		{"email", f.Email},
		{"phone", f.Phone},
		{"contractType", f.ContractType},
		{"source", f.Source},
		{"collectedAmount", f.CollectedAmount},
		{"bonus", f.Bonus},
		{"paymentMethod", f.PaymentMethod},
	}

	errs := FieldErrors{}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs[r.name] = "required"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// EventTimestamp composes the planning timestamp from a date and a
// zero-padded hour:minute pair.
func EventTimestamp(date, hour, minute string) string {
	return fmt.Sprintf("%s %s:%s", strings.TrimSpace(date), pad2(hour), pad2(minute))
}

func pad2(raw string) string {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%02d", n)
}
