package app

import (
	"context"
	"errors"
	"sync"

	"github.com/example/contactdesk/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockContactRepository implements secondary.ContactRepository for testing.
type mockContactRepository struct {
	mu       sync.Mutex
	contacts map[string]*secondary.ContactRecord

	listResult []*secondary.ContactRecord
	listTotal  int
	lastQuery  *secondary.ContactQuery
	listCalls  int

	updateStatusCalls []string // contact IDs in call order
	updateClientCalls []string
	assignCalls       map[string]string // contact ID -> assigned user ID

	getErr          error
	listErr         error
	updateStatusErr error
	updateClientErr error
	assignErr       error
}

func newMockContactRepository() *mockContactRepository {
	return &mockContactRepository{
		contacts:    make(map[string]*secondary.ContactRecord),
		assignCalls: make(map[string]string),
	}
}

func (m *mockContactRepository) GetByID(ctx context.Context, id string) (*secondary.ContactRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if c, ok := m.contacts[id]; ok {
		return c, nil
	}
	return nil, errors.New("contact not found")
}

func (m *mockContactRepository) List(ctx context.Context, query secondary.ContactQuery) ([]*secondary.ContactRecord, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	m.lastQuery = &query
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.listResult, m.listTotal, nil
}

func (m *mockContactRepository) UpdateStatus(ctx context.Context, id, statusID, teleoperatorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateStatusErr != nil {
		return m.updateStatusErr
	}
	m.updateStatusCalls = append(m.updateStatusCalls, id)
	if c, ok := m.contacts[id]; ok {
		c.StatusID = statusID
	}
	return nil
}

func (m *mockContactRepository) UpdateClient(ctx context.Context, id, statusID string, fields secondary.ClientFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateClientErr != nil {
		return m.updateClientErr
	}
	m.updateClientCalls = append(m.updateClientCalls, id)
	if c, ok := m.contacts[id]; ok {
		c.StatusID = statusID
	}
	return nil
}

func (m *mockContactRepository) AssignAgent(ctx context.Context, id, role, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.assignErr != nil {
		return m.assignErr
	}
	m.assignCalls[id] = userID
	return nil
}

// mockStatusRepository implements secondary.StatusRepository for testing.
type mockStatusRepository struct {
	statuses map[string]*secondary.StatusRecord
	listErr  error
}

func newMockStatusRepository() *mockStatusRepository {
	return &mockStatusRepository{statuses: make(map[string]*secondary.StatusRecord)}
}

func (m *mockStatusRepository) GetByID(ctx context.Context, id string) (*secondary.StatusRecord, error) {
	if s, ok := m.statuses[id]; ok {
		return s, nil
	}
	return nil, errors.New("status not found")
}

func (m *mockStatusRepository) List(ctx context.Context) ([]*secondary.StatusRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.StatusRecord
	for _, s := range m.statuses {
		result = append(result, s)
	}
	return result, nil
}

// mockGrantRepository implements secondary.GrantRepository for testing.
type mockGrantRepository struct {
	grants  []*secondary.GrantRecord
	listErr error
}

func (m *mockGrantRepository) ListForUser(ctx context.Context, userID string) ([]*secondary.GrantRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.grants, nil
}

// mockNoteRepository implements secondary.NoteRepository for testing.
type mockNoteRepository struct {
	notes      []*secondary.NoteRecord
	categories []*secondary.NoteCategoryRecord
	createErr  error
}

func (m *mockNoteRepository) Create(ctx context.Context, note *secondary.NoteRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.notes = append(m.notes, note)
	return nil
}

func (m *mockNoteRepository) ListCategories(ctx context.Context) ([]*secondary.NoteCategoryRecord, error) {
	return m.categories, nil
}

// mockEventRepository implements secondary.EventRepository for testing.
type mockEventRepository struct {
	events    []*secondary.EventRecord
	createErr error
}

func (m *mockEventRepository) Create(ctx context.Context, event *secondary.EventRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.events = append(m.events, event)
	return nil
}

// mockUserRepository implements secondary.UserRepository for testing.
type mockUserRepository struct {
	users     map[string]*secondary.UserRecord
	listErr   error
	listCalls int
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*secondary.UserRecord)}
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("user not found")
}

func (m *mockUserRepository) List(ctx context.Context) ([]*secondary.UserRecord, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.UserRecord
	for _, u := range m.users {
		result = append(result, u)
	}
	return result, nil
}

// mockSettingsRepository implements secondary.SettingsRepository for testing.
type mockSettingsRepository struct {
	forced  []*secondary.ForcedFilterRecord
	loadErr error
}

func (m *mockSettingsRepository) ForcedFilters(ctx context.Context, userID string) ([]*secondary.ForcedFilterRecord, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.forced, nil
}
