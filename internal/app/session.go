package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/contactdesk/internal/core/permission"
	"github.com/example/contactdesk/internal/models"
	"github.com/example/contactdesk/internal/ports/secondary"
)

// Session holds the per-user permission state. Grants are loaded once on
// first use and immutable for the rest of the session.
type Session struct {
	UserID string

	grantRepo secondary.GrantRepository

	mu       sync.Mutex
	resolver *permission.Resolver
}

// NewSession creates a session for a user.
func NewSession(userID string, grantRepo secondary.GrantRepository) *Session {
	return &Session{UserID: userID, grantRepo: grantRepo}
}

// Resolver returns the session's permission resolver, loading the grant set
// on the first call.
func (s *Session) Resolver(ctx context.Context) (*permission.Resolver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resolver != nil {
		return s.resolver, nil
	}

	records, err := s.grantRepo.ListForUser(ctx, s.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load permission grants: %w", err)
	}

	grants := make([]models.Grant, 0, len(records))
	for _, r := range records {
		grants = append(grants, models.Grant{
			Component: models.GrantComponent(r.Component),
			Action:    models.GrantAction(r.Action),
			FieldName: r.FieldName,
			StatusID:  r.StatusID,
		})
	}

	s.resolver = permission.NewResolver(grants)
	return s.resolver, nil
}
