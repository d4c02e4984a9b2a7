// Package server exposes the contact desk services over HTTP. The routes
// mirror what the contact screen calls: list with filter query parameters,
// status changes and bulk assignment.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/contactdesk/internal/app"
	"github.com/example/contactdesk/internal/core/filterset"
	"github.com/example/contactdesk/internal/core/transition"
	"github.com/example/contactdesk/internal/ports/primary"
)

// Server routes HTTP requests to the application services.
type Server struct {
	contacts    primary.ContactService
	transitions primary.TransitionService
	assignments primary.AssignmentService
}

// New creates a server over the given services.
func New(contacts primary.ContactService, transitions primary.TransitionService, assignments primary.AssignmentService) *Server {
	return &Server{contacts: contacts, transitions: transitions, assignments: assignments}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/contacts", s.handleListContacts)
		r.Get("/contacts/filters", s.handleEffectiveFilters)
		r.Post("/contacts/filters/reset", s.handleResetFilters)
		r.Post("/contacts/{id}/status", s.handleChangeStatus)
		r.Post("/assignments/plan", s.handlePlanBulkAssign)
		r.Post("/assignments", s.handleBulkAssign)
	})

	return r
}

// handleListContacts translates filter_ query parameters into filter inputs,
// applies them and runs the list query.
func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	for column, input := range parseFilterParams(q) {
		if err := s.contacts.SetColumnFilter(column, input); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		// Forced columns win silently: the engine keeps its own value.
		if err := s.contacts.ApplyColumnFilter(column); err != nil && !errors.Is(err, filterset.ErrColumnForced) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	req := primary.ListContactsRequest{
		Page:       intParam(q.Get("page"), 1),
		PageSize:   intParam(q.Get("page_size"), 25),
		Search:     q.Get("search"),
		StatusType: q.Get("status_type"),
		Order:      q.Get("order"),
	}

	page, err := s.contacts.ListContacts(r.Context(), req)
	if err != nil {
		if errors.Is(err, app.ErrReloadInFlight) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"contacts": contactsJSON(page.Contacts),
		"total":    page.Total,
		"page":     page.Page,
	})
}

// handleEffectiveFilters reports the filters the next query will use, plus
// the list query string they produce. Clients replay that string against
// /api/contacts verbatim, which makes a filtered view shareable.
func (s *Server) handleEffectiveFilters(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := s.contacts.EffectiveFilters()
	out := make(map[string]any, len(filters))
	effective := make(map[string]filterset.Value, len(filters))
	for column, f := range filters {
		out[column] = map[string]any{
			"values": f.Values,
			"text":   f.Text,
			"from":   f.From,
			"to":     f.To,
		}
		effective[column] = filterValue(column, f)
	}

	params := filterset.BuildParams(filterset.Query{
		Page:       intParam(q.Get("page"), 1),
		PageSize:   intParam(q.Get("page_size"), 25),
		Search:     q.Get("search"),
		StatusType: q.Get("status_type"),
		Order:      q.Get("order"),
	}, effective)

	writeJSON(w, http.StatusOK, map[string]any{
		"filters": out,
		"query":   params.Encode(),
	})
}

func (s *Server) handleResetFilters(w http.ResponseWriter, r *http.Request) {
	s.contacts.ResetFilters()
	w.WriteHeader(http.StatusNoContent)
}

type changeStatusPayload struct {
	StatusID    string                    `json:"status_id"`
	Note        string                    `json:"note"`
	CategoryID  string                    `json:"category_id"`
	EventDate   string                    `json:"event_date"`
	EventHour   string                    `json:"event_hour"`
	EventMinute string                    `json:"event_minute"`
	Conversion  *clientConversionPayload  `json:"conversion"`
}

type clientConversionPayload struct {
	Platform        string `json:"platform"`
	Teleoperator    string `json:"teleoperator"`
	StageName       string `json:"stageName"`
	FirstName       string `json:"firstName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ContractType    string `json:"contractType"`
	Source          string `json:"source"`
	CollectedAmount string `json:"collectedAmount"`
	Bonus           string `json:"bonus"`
	PaymentMethod   string `json:"paymentMethod"`
}

func (s *Server) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	var payload changeStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	req := primary.ChangeStatusRequest{
		ContactID:      chi.URLParam(r, "id"),
		TargetStatusID: payload.StatusID,
		Note:           payload.Note,
		CategoryID:     payload.CategoryID,
		EventDate:      payload.EventDate,
		EventHour:      payload.EventHour,
		EventMinute:    payload.EventMinute,
	}
	if payload.Conversion != nil {
		req.Conversion = &primary.ClientConversion{
			Platform:        payload.Conversion.Platform,
			Teleoperator:    payload.Conversion.Teleoperator,
			StageName:       payload.Conversion.StageName,
			FirstName:       payload.Conversion.FirstName,
			Email:           payload.Conversion.Email,
			Phone:           payload.Conversion.Phone,
			ContractType:    payload.Conversion.ContractType,
			Source:          payload.Conversion.Source,
			CollectedAmount: payload.Conversion.CollectedAmount,
			Bonus:           payload.Conversion.Bonus,
			PaymentMethod:   payload.Conversion.PaymentMethod,
		}
	}

	resp, err := s.transitions.ChangeStatus(r.Context(), req)
	if err != nil {
		var fieldErrs transition.FieldErrors
		if errors.As(err, &fieldErrs) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  err.Error(),
				"fields": fieldErrs,
			})
			return
		}
		// A wrapped failure after the contact write reports what did land.
		if resp != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":      err.Error(),
				"contact_id": resp.ContactID,
				"status_id":  resp.StatusID,
			})
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"contact_id": resp.ContactID,
		"status_id":  resp.StatusID,
		"event_id":   resp.EventID,
		"note_id":    resp.NoteID,
	})
}

type bulkAssignPayload struct {
	ContactIDs []string `json:"contact_ids"`
	Role       string   `json:"role"`
	UserID     string   `json:"user_id"`
	Confirmed  bool     `json:"confirmed"`
}

func (p bulkAssignPayload) toRequest() primary.BulkAssignRequest {
	return primary.BulkAssignRequest{
		ContactIDs: p.ContactIDs,
		Role:       p.Role,
		UserID:     p.UserID,
		Confirmed:  p.Confirmed,
	}
}

func (s *Server) handlePlanBulkAssign(w http.ResponseWriter, r *http.Request) {
	var payload bulkAssignPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	plan, err := s.assignments.PlanBulkAssign(r.Context(), payload.toRequest())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"would_unassign":        plan.WouldUnassign,
		"requires_confirmation": plan.RequiresConfirmation,
	})
}

func (s *Server) handleBulkAssign(w http.ResponseWriter, r *http.Request) {
	var payload bulkAssignPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := s.assignments.BulkAssign(r.Context(), payload.toRequest())
	if err != nil {
		if errors.Is(err, app.ErrConfirmationRequired) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"error":                 err.Error(),
				"requires_confirmation": true,
			})
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	items := make([]map[string]any, len(resp.Items))
	for i, item := range resp.Items {
		items[i] = map[string]any{"contact_id": item.ContactID, "error": item.Err}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"succeeded": resp.Succeeded,
		"failed":    resp.Failed,
		"items":     items,
	})
}

// parseFilterParams extracts filter_<column> style parameters. Multi-select
// columns repeat the parameter; date columns use _from and _to suffixes.
func parseFilterParams(q map[string][]string) map[string]primary.FilterInput {
	filters := make(map[string]primary.FilterInput)
	for key, values := range q {
		if !strings.HasPrefix(key, "filter_") || len(values) == 0 {
			continue
		}
		name := strings.TrimPrefix(key, "filter_")

		switch {
		case strings.HasSuffix(name, "_from"):
			column := strings.TrimSuffix(name, "_from")
			f := filters[column]
			f.From = values[0]
			filters[column] = f
		case strings.HasSuffix(name, "_to"):
			column := strings.TrimSuffix(name, "_to")
			f := filters[column]
			f.To = values[0]
			filters[column] = f
		case filterset.ColumnKind(name) == filterset.KindMulti:
			f := filters[name]
			f.Values = values
			filters[name] = f
		default:
			f := filters[name]
			f.Text = values[0]
			filters[name] = f
		}
	}
	return filters
}

func contactsJSON(contacts []*primary.Contact) []map[string]any {
	out := make([]map[string]any, len(contacts))
	for i, c := range contacts {
		out[i] = map[string]any{
			"id":              c.ID,
			"first_name":      c.FirstName,
			"last_name":       c.LastName,
			"email":           c.Email,
			"phone":           c.Phone,
			"platform":        c.Platform,
			"source":          c.Source,
			"teleoperator_id": c.TeleoperatorID,
			"confirmateur_id": c.ConfirmateurID,
			"in_fosse":        c.InFosse,
			"created_at":      c.CreatedAt,
			"updated_at":      c.UpdatedAt,
			"status": map[string]any{
				"id":       c.StatusID,
				"label":    c.StatusLabel,
				"color":    c.StatusColor,
				"visible":  c.StatusVisible,
				"editable": c.StatusEditable,
			},
		}
	}
	return out
}

// filterValue rebuilds the engine's typed value from boundary input using the
// column's fixed classification.
func filterValue(column string, f primary.FilterInput) filterset.Value {
	switch filterset.ColumnKind(column) {
	case filterset.KindMulti:
		return filterset.MultiValue(f.Values...)
	case filterset.KindDateRange:
		return filterset.DateRangeValue(f.From, f.To)
	default:
		return filterset.TextValue(f.Text)
	}
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}
