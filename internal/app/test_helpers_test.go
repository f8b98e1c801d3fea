package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/example/pulse/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces
var (
	_ secondary.InitiativeRepository = (*mockInitiativeRepository)(nil)
	_ secondary.UpdateRepository     = (*mockUpdateRepository)(nil)
	_ secondary.TaskRepository       = (*mockTaskRepository)(nil)
	_ secondary.Transactor           = (*mockTransactor)(nil)
	_ secondary.IdentityProvider     = (*mockIdentityProvider)(nil)
)

// mockInitiativeRepository implements secondary.InitiativeRepository for testing.
type mockInitiativeRepository struct {
	mu          sync.Mutex
	initiatives map[string]*secondary.InitiativeRecord
	createErr   error
	getErr      error
	listErr     error
	deleteErr   error
}

func newMockInitiativeRepository() *mockInitiativeRepository {
	return &mockInitiativeRepository{initiatives: make(map[string]*secondary.InitiativeRecord)}
}

func (m *mockInitiativeRepository) Create(ctx context.Context, initiative *secondary.InitiativeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	copied := *initiative
	m.initiatives[initiative.ID] = &copied
	return nil
}

func (m *mockInitiativeRepository) GetByID(ctx context.Context, id string) (*secondary.InitiativeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if r, ok := m.initiatives[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, fmt.Errorf("initiative %s %w", id, secondary.ErrNotFound)
}

func (m *mockInitiativeRepository) GetByName(ctx context.Context, ownerID, name string) (*secondary.InitiativeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.initiatives {
		if r.OwnerID == ownerID && r.Name == name {
			copied := *r
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("initiative %q %w", name, secondary.ErrNotFound)
}

func (m *mockInitiativeRepository) List(ctx context.Context, filters secondary.InitiativeFilters) ([]*secondary.InitiativeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.InitiativeRecord
	for _, r := range m.initiatives {
		if filters.OwnerID != "" && r.OwnerID != filters.OwnerID {
			continue
		}
		if filters.Kind != "" && r.Kind != filters.Kind {
			continue
		}
		copied := *r
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockInitiativeRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.initiatives[id]; !ok {
		return fmt.Errorf("initiative %s %w", id, secondary.ErrNotFound)
	}
	delete(m.initiatives, id)
	return nil
}

// mockUpdateRepository implements secondary.UpdateRepository for testing.
// Updates are kept in insertion order.
type mockUpdateRepository struct {
	mu         sync.Mutex
	updates    []*secondary.UpdateRecord
	createErr  error
	getLastErr error
	listErr    error
}

func newMockUpdateRepository() *mockUpdateRepository {
	return &mockUpdateRepository{}
}

func (m *mockUpdateRepository) Create(ctx context.Context, update *secondary.UpdateRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	copied := *update
	m.updates = append(m.updates, &copied)
	return nil
}

func (m *mockUpdateRepository) GetByID(ctx context.Context, id string) (*secondary.UpdateRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.updates {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("update %s %w", id, secondary.ErrNotFound)
}

// newestFirst returns an initiative's updates sorted by CreatedAt descending,
// later insertions first on ties. Caller holds the lock.
func (m *mockUpdateRepository) newestFirst(initiativeID string) []*secondary.UpdateRecord {
	var result []*secondary.UpdateRecord
	for i := len(m.updates) - 1; i >= 0; i-- {
		if m.updates[i].InitiativeID == initiativeID {
			copied := *m.updates[i]
			result = append(result, &copied)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt > result[j].CreatedAt })
	return result
}

func (m *mockUpdateRepository) GetLatest(ctx context.Context, initiativeID string) (*secondary.UpdateRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getLastErr != nil {
		return nil, m.getLastErr
	}
	updates := m.newestFirst(initiativeID)
	if len(updates) == 0 {
		return nil, nil
	}
	return updates[0], nil
}

func (m *mockUpdateRepository) List(ctx context.Context, filters secondary.UpdateFilters) ([]*secondary.UpdateRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	updates := m.newestFirst(filters.InitiativeID)
	if filters.Limit > 0 && len(updates) > filters.Limit {
		updates = updates[:filters.Limit]
	}
	return updates, nil
}

// mockTaskRepository implements secondary.TaskRepository for testing.
type mockTaskRepository struct {
	mu        sync.Mutex
	tasks     []*secondary.TaskRecord
	createErr error
	listErr   error
	deleteErr error
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{}
}

func (m *mockTaskRepository) CreateBatch(ctx context.Context, tasks []*secondary.TaskRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, t := range tasks {
		copied := *t
		m.tasks = append(m.tasks, &copied)
	}
	return nil
}

func (m *mockTaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.TaskRecord
	for _, t := range m.tasks {
		if filters.UpdateID != "" && t.UpdateID != filters.UpdateID {
			continue
		}
		if filters.OpenOnly && t.IsCompleted {
			continue
		}
		if filters.WithDueDate && t.DueDate == "" {
			continue
		}
		copied := *t
		result = append(result, &copied)
	}

	switch filters.Order {
	case secondary.TaskOrderDueDate:
		sort.SliceStable(result, func(i, j int) bool {
			a, b := result[i], result[j]
			if (a.DueDate == "") != (b.DueDate == "") {
				return a.DueDate != ""
			}
			if a.DueDate != b.DueDate {
				return a.DueDate < b.DueDate
			}
			return a.DisplayOrder < b.DisplayOrder
		})
	default:
		sort.SliceStable(result, func(i, j int) bool { return result[i].DisplayOrder < result[j].DisplayOrder })
	}

	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockTaskRepository) DeleteByUpdate(ctx context.Context, updateID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	kept := m.tasks[:0]
	removed := 0
	for _, t := range m.tasks {
		if t.UpdateID == updateID {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	m.tasks = kept
	return removed, nil
}

// mockTransactor runs the unit of work directly and counts invocations.
type mockTransactor struct {
	calls int
}

func (m *mockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// mockIdentityProvider implements secondary.IdentityProvider for testing.
type mockIdentityProvider struct {
	user *secondary.User
	err  error
}

func signedInAs(id string) *mockIdentityProvider {
	return &mockIdentityProvider{user: &secondary.User{ID: id, Email: id + "@example.com"}}
}

func (m *mockIdentityProvider) CurrentUser(ctx context.Context) (*secondary.User, error) {
	return m.user, m.err
}

func (m *mockIdentityProvider) SignIn(ctx context.Context, user secondary.User) error {
	m.user = &user
	return nil
}

func (m *mockIdentityProvider) SignOut(ctx context.Context) error {
	m.user = nil
	return nil
}

// sequence returns an id generator producing prefix-1, prefix-2, ...
func sequence(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// ticker returns a clock that advances one minute per call from start.
func ticker(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Minute)
		return current
	}
}

// seed helpers write directly to the mocks.

func (m *mockInitiativeRepository) seed(id, ownerID, name, kind string) {
	m.initiatives[id] = &secondary.InitiativeRecord{
		ID:        id,
		OwnerID:   ownerID,
		Name:      name,
		Kind:      kind,
		CreatedAt: "2026-01-01T00:00:00.000000000Z",
	}
}

func (m *mockUpdateRepository) seed(id, initiativeID, createdAt string) {
	m.updates = append(m.updates, &secondary.UpdateRecord{
		ID:                  id,
		InitiativeID:        initiativeID,
		CreatedAt:           createdAt,
		ConfidencePlan:      "good",
		ConfidenceAlignment: "good",
		ConfidenceExecution: "good",
		ConfidenceOutcomes:  "na",
		StatusMood:          "good",
	})
}

func (m *mockTaskRepository) seed(id, updateID, text string, completed bool, order int, due string) {
	m.tasks = append(m.tasks, &secondary.TaskRecord{
		ID:           id,
		UpdateID:     updateID,
		Text:         text,
		IsCompleted:  completed,
		DisplayOrder: order,
		DueDate:      due,
	})
}
