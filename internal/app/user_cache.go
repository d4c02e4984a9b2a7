package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/contactdesk/internal/models"
	"github.com/example/contactdesk/internal/ports/secondary"
)

// userCacheTTL bounds how long the agent directory is served from memory
// before a reload.
const userCacheTTL = 5 * time.Minute

// UserCache caches the agent directory with a TTL. The directory changes
// rarely but is consulted on every assignment, so a short-lived cache keeps
// repeated lookups off the database.
type UserCache struct {
	repo secondary.UserRepository
	ttl  time.Duration
	now  func() time.Time

	mu        sync.Mutex
	users     map[string]*models.User
	fetchedAt time.Time
}

// NewUserCache creates a user cache with the default TTL.
func NewUserCache(repo secondary.UserRepository) *UserCache {
	return &UserCache{repo: repo, ttl: userCacheTTL, now: time.Now}
}

// GetOrRefresh returns the cached directory, reloading it when the TTL has
// elapsed or nothing is cached yet.
func (c *UserCache) GetOrRefresh(ctx context.Context) (map[string]*models.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.users != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.users, nil
	}

	records, err := c.repo.List(ctx)
	if err != nil {
		if c.users != nil {
			// Stale data beats no data for a directory lookup.
			return c.users, nil
		}
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	users := make(map[string]*models.User, len(records))
	for _, r := range records {
		users[r.ID] = &models.User{ID: r.ID, Name: r.Name, Role: r.Role, Platform: r.Platform}
	}
	c.users = users
	c.fetchedAt = c.now()
	return c.users, nil
}

// Invalidate drops the cached directory so the next lookup reloads it.
func (c *UserCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = nil
}
