package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/example/contactdesk/internal/core/filterset"
	"github.com/example/contactdesk/internal/core/statusview"
	"github.com/example/contactdesk/internal/models"
	"github.com/example/contactdesk/internal/ports/primary"
	"github.com/example/contactdesk/internal/ports/secondary"
)

// ErrReloadInFlight is returned when a list reload arrives while another one
// is still running. The call is dropped, not queued; the caller re-triggers.
var ErrReloadInFlight = errors.New("a contact reload is already in flight")

// ContactServiceImpl implements the ContactService interface. One instance
// owns one list session: filter layers, page and the reload guard.
type ContactServiceImpl struct {
	session      *Session
	contactRepo  secondary.ContactRepository
	statusRepo   secondary.StatusRepository
	settingsRepo secondary.SettingsRepository

	mu        sync.Mutex
	engine    *filterset.Engine
	reloading bool
}

// NewContactService creates a new ContactService with injected dependencies.
func NewContactService(
	session *Session,
	contactRepo secondary.ContactRepository,
	statusRepo secondary.StatusRepository,
	settingsRepo secondary.SettingsRepository,
) *ContactServiceImpl {
	return &ContactServiceImpl{
		session:      session,
		contactRepo:  contactRepo,
		statusRepo:   statusRepo,
		settingsRepo: settingsRepo,
		engine:       filterset.NewEngine(),
	}
}

// ListContacts runs the effective query and computes each contact's status
// view. Overlapping reloads are dropped.
func (s *ContactServiceImpl) ListContacts(ctx context.Context, req primary.ListContactsRequest) (*primary.ContactPage, error) {
	s.mu.Lock()
	if s.reloading {
		s.mu.Unlock()
		return nil, ErrReloadInFlight
	}
	s.reloading = true

	if err := s.reconcileForced(ctx); err != nil {
		s.reloading = false
		s.mu.Unlock()
		return nil, err
	}
	if req.Page > 0 {
		s.engine.SetPage(req.Page)
	}
	effective := s.engine.Effective()
	page := s.engine.Page()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.reloading = false
		s.mu.Unlock()
	}()

	query := secondary.ContactQuery{
		Page:     page,
		PageSize: req.PageSize,
		Search:   req.Search,
		Order:    req.Order,
		Columns:  toConstraints(effective),
	}
	// status_type narrows the query only while no explicit status filter is
	// active; the status filter is the narrower constraint.
	if v, ok := effective[filterset.ColumnStatus]; !ok || !v.IsSet() {
		query.StatusType = req.StatusType
	}

	records, total, err := s.contactRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	statuses, err := s.statusIndex(ctx)
	if err != nil {
		return nil, err
	}
	resolver, err := s.session.Resolver(ctx)
	if err != nil {
		return nil, err
	}

	contacts := make([]*primary.Contact, len(records))
	for i, r := range records {
		c := recordToContact(r)
		view := statusview.Evaluate(resolver, c, statuses[r.StatusID], s.session.UserID)
		contacts[i] = &primary.Contact{
			ID:             r.ID,
			FirstName:      r.FirstName,
			LastName:       r.LastName,
			Email:          r.Email,
			Phone:          r.Phone,
			Platform:       r.Platform,
			Source:         r.Source,
			TeleoperatorID: r.TeleoperatorID,
			ConfirmateurID: r.ConfirmateurID,
			InFosse:        c.InFosse(),
			CreatedAt:      r.CreatedAt,
			UpdatedAt:      r.UpdatedAt,
			StatusID:       r.StatusID,
			StatusLabel:    view.Label,
			StatusColor:    view.Color,
			StatusVisible:  view.CanView,
			StatusEditable: view.Editable(),
		}
	}

	return &primary.ContactPage{Contacts: contacts, Total: total, Page: page}, nil
}

// SetColumnFilter stores a draft filter for a column.
func (s *ContactServiceImpl) SetColumnFilter(column string, filter primary.FilterInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetPending(column, toValue(column, filter))
	return nil
}

// ApplyColumnFilter applies one column's draft filter.
func (s *ContactServiceImpl) ApplyColumnFilter(column string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ApplyColumn(column)
}

// ApplyFilters applies every draft filter.
func (s *ContactServiceImpl) ApplyFilters() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ApplyAll()
}

// ResetColumnFilter clears one column's filter.
func (s *ContactServiceImpl) ResetColumnFilter(column string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ResetColumn(column)
}

// ResetFilters clears all user filters, re-seeding defined forced entries.
func (s *ContactServiceImpl) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.ResetFilters()
}

// EffectiveFilters returns the filters the next query will use.
func (s *ContactServiceImpl) EffectiveFilters() map[string]primary.FilterInput {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]primary.FilterInput)
	for column, v := range s.engine.Effective() {
		out[column] = primary.FilterInput{Values: v.Values, Text: v.Text, From: v.From, To: v.To}
	}
	return out
}

// reconcileForced re-derives the forced layer from settings. The engine's
// signature guard makes repeated calls with unchanged configuration no-ops.
// Caller holds the mutex.
func (s *ContactServiceImpl) reconcileForced(ctx context.Context) error {
	records, err := s.settingsRepo.ForcedFilters(ctx, s.session.UserID)
	if err != nil {
		return fmt.Errorf("failed to load forced filters: %w", err)
	}

	forced := make(map[string]filterset.ForcedFilter, len(records))
	for _, r := range records {
		forced[r.Column] = filterset.ForcedFilter{
			Type: filterset.ForcedType(r.Type),
			Value: toValue(r.Column, primary.FilterInput{
				Values: r.Values,
				Text:   r.Value,
				From:   r.DateFrom,
				To:     r.DateTo,
			}),
		}
	}
	s.engine.SetForced(forced)
	return nil
}

func (s *ContactServiceImpl) statusIndex(ctx context.Context) (map[string]*models.Status, error) {
	records, err := s.statusRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load statuses: %w", err)
	}
	index := make(map[string]*models.Status, len(records))
	for _, r := range records {
		index[r.ID] = &models.Status{
			ID:            r.ID,
			Name:          r.Name,
			Color:         r.Color,
			Type:          r.Type,
			ClientDefault: r.ClientDefault,
			IsEvent:       r.IsEvent,
		}
	}
	return index, nil
}

// toValue builds a typed filter value from boundary input using the column's
// fixed classification.
func toValue(column string, in primary.FilterInput) filterset.Value {
	switch filterset.ColumnKind(column) {
	case filterset.KindMulti:
		return filterset.MultiValue(in.Values...)
	case filterset.KindDateRange:
		return filterset.DateRangeValue(in.From, in.To)
	default:
		return filterset.TextValue(in.Text)
	}
}

func toConstraints(effective map[string]filterset.Value) map[string]secondary.ColumnConstraint {
	out := make(map[string]secondary.ColumnConstraint, len(effective))
	for column, v := range effective {
		if !v.IsSet() {
			continue
		}
		out[column] = secondary.ColumnConstraint{Values: v.Values, Text: v.Text, From: v.From, To: v.To}
	}
	return out
}

func recordToContact(r *secondary.ContactRecord) models.Contact {
	return models.Contact{
		ID:             r.ID,
		StatusID:       r.StatusID,
		TeleoperatorID: r.TeleoperatorID,
		ConfirmateurID: r.ConfirmateurID,
	}
}

// Ensure ContactServiceImpl implements the interface
var _ primary.ContactService = (*ContactServiceImpl)(nil)
