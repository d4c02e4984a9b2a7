package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/contactdesk/internal/core/transition"
	"github.com/example/contactdesk/internal/ports/primary"
	"github.com/example/contactdesk/internal/ports/secondary"
)

// TransitionServiceImpl implements the TransitionService interface.
type TransitionServiceImpl struct {
	session     *Session
	contactRepo secondary.ContactRepository
	statusRepo  secondary.StatusRepository
	noteRepo    secondary.NoteRepository
	eventRepo   secondary.EventRepository
}

// NewTransitionService creates a new TransitionService with injected
// dependencies.
func NewTransitionService(
	session *Session,
	contactRepo secondary.ContactRepository,
	statusRepo secondary.StatusRepository,
	noteRepo secondary.NoteRepository,
	eventRepo secondary.EventRepository,
) *TransitionServiceImpl {
	return &TransitionServiceImpl{
		session:     session,
		contactRepo: contactRepo,
		statusRepo:  statusRepo,
		noteRepo:    noteRepo,
		eventRepo:   eventRepo,
	}
}

// ChangeStatus validates and executes one contact's status change.
//
// All validation runs before the first write. The side effects that follow
// are sequential and are not rolled back when a later one fails: a contact
// already updated stays updated if the event or note creation errors. That
// matches the historical behaviour of the desk; callers surface the wrapped
// error so the gap is at least visible.
func (s *TransitionServiceImpl) ChangeStatus(ctx context.Context, req primary.ChangeStatusRequest) (*primary.ChangeStatusResponse, error) {
	record, err := s.contactRepo.GetByID(ctx, req.ContactID)
	if err != nil {
		return nil, err
	}

	target, err := s.statusRepo.GetByID(ctx, req.TargetStatusID)
	if err != nil {
		return nil, fmt.Errorf("status %s not found", req.TargetStatusID)
	}

	categories, err := s.noteRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load note categories: %w", err)
	}

	resolver, err := s.session.Resolver(ctx)
	if err != nil {
		return nil, err
	}

	contact := recordToContact(record)
	fosse := contact.InFosse()
	statusChanging := record.StatusID != req.TargetStatusID
	canPlan := resolver.CanCreatePlanning()

	guard := transition.CanChangeStatus(transition.ChangeContext{
		Note:                 req.Note,
		CategoryID:           req.CategoryID,
		CategoriesExist:      len(categories) > 0,
		StatusChanging:       statusChanging,
		CanEditCurrentStatus: resolver.CanEditStatus(record.StatusID, fosse),
		CanViewNewStatus:     resolver.CanViewStatus(req.TargetStatusID, fosse),
		CanEditContact:       resolver.CanEditContact(contact),
		TargetIsEvent:        target.IsEvent,
		CanCreatePlanning:    canPlan,
		EventDate:            req.EventDate,
		EventHour:            req.EventHour,
		EventMinute:          req.EventMinute,
	})
	if !guard.Allowed {
		return nil, guard.Error()
	}

	var conversion *primary.ClientConversion
	if target.ClientDefault {
		conversion = req.Conversion
		if conversion == nil {
			conversion = &primary.ClientConversion{}
		}
		if errs := transition.ValidateConversion(transition.ConversionFields{
			Platform:        conversion.Platform,
			Teleoperator:    conversion.Teleoperator,
			StageName:       conversion.StageName,
			FirstName:       conversion.FirstName,
			Email:           conversion.Email,
			Phone:           conversion.Phone,
			ContractType:    conversion.ContractType,
			Source:          conversion.Source,
			CollectedAmount: conversion.CollectedAmount,
			Bonus:           conversion.Bonus,
			PaymentMethod:   conversion.PaymentMethod,
		}); errs != nil {
			return nil, errs
		}
	}

	// Side effect 1: the contact itself.
	if target.ClientDefault {
		err = s.contactRepo.UpdateClient(ctx, record.ID, target.ID, secondary.ClientFields{
			Platform:       conversion.Platform,
			TeleoperatorID: conversion.Teleoperator,
			StageName:      conversion.StageName,
			FirstName:      conversion.FirstName,
			Email:          conversion.Email,
			Phone:          conversion.Phone,
			ContractType:   conversion.ContractType,
			Source:         conversion.Source,
			CollectedAmt:   conversion.CollectedAmount,
			Bonus:          conversion.Bonus,
			PaymentMethod:  conversion.PaymentMethod,
		})
	} else {
		err = s.contactRepo.UpdateStatus(ctx, record.ID, target.ID, s.session.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	resp := &primary.ChangeStatusResponse{ContactID: record.ID, StatusID: target.ID}

	// Side effect 2: the planning event.
	if target.IsEvent && canPlan {
		event := &secondary.EventRecord{
			ID:        uuid.NewString(),
			ContactID: record.ID,
			UserID:    s.session.UserID,
			Datetime:  transition.EventTimestamp(req.EventDate, req.EventHour, req.EventMinute),
			Comment:   req.Note,
		}
		if err := s.eventRepo.Create(ctx, event); err != nil {
			return resp, fmt.Errorf("contact updated but event creation failed: %w", err)
		}
		resp.EventID = event.ID
	}

	// Side effect 3: the note.
	note := &secondary.NoteRecord{
		ID:         uuid.NewString(),
		ContactID:  record.ID,
		UserID:     s.session.UserID,
		Text:       req.Note,
		CategoryID: req.CategoryID,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return resp, fmt.Errorf("contact updated but note creation failed: %w", err)
	}
	resp.NoteID = note.ID

	return resp, nil
}

// Ensure TransitionServiceImpl implements the interface
var _ primary.TransitionService = (*TransitionServiceImpl)(nil)
