// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
)

// ErrNotFound is wrapped by repositories when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// TimestampLayout is the fixed-width UTC format of CreatedAt fields.
// Values sort lexically in creation order down to the nanosecond.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

// Transactor runs a unit of work atomically. Repositories called with the
// context passed to fn join the transaction; if fn returns an error every
// write is rolled back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// InitiativeRepository defines the secondary port for initiative persistence.
type InitiativeRepository interface {
	// Create persists a new initiative.
	Create(ctx context.Context, initiative *InitiativeRecord) error

	// GetByID retrieves an initiative by its ID.
	GetByID(ctx context.Context, id string) (*InitiativeRecord, error)

	// GetByName retrieves an owner's initiative by name.
	GetByName(ctx context.Context, ownerID, name string) (*InitiativeRecord, error)

	// List retrieves initiatives matching the given filters, ordered by name.
	List(ctx context.Context, filters InitiativeFilters) ([]*InitiativeRecord, error)

	// Delete removes an initiative together with its updates and tasks.
	Delete(ctx context.Context, id string) error
}

// InitiativeRecord represents an initiative as stored in persistence.
type InitiativeRecord struct {
	ID        string
	OwnerID   string
	Name      string
	Kind      string // "standard" or "miscellaneous"
	CreatedAt string
}

// InitiativeFilters contains filter options for querying initiatives.
type InitiativeFilters struct {
	OwnerID string
	Kind    string
}

// UpdateRepository defines the secondary port for update persistence.
// Updates are append-only; there is no Update or Delete.
type UpdateRepository interface {
	// Create persists a new update.
	Create(ctx context.Context, update *UpdateRecord) error

	// GetByID retrieves an update by its ID.
	GetByID(ctx context.Context, id string) (*UpdateRecord, error)

	// GetLatest retrieves the most recent update of an initiative.
	// Returns nil, nil when the initiative has no updates.
	GetLatest(ctx context.Context, initiativeID string) (*UpdateRecord, error)

	// List retrieves updates of an initiative, newest first.
	List(ctx context.Context, filters UpdateFilters) ([]*UpdateRecord, error)
}

// UpdateRecord represents an update as stored in persistence.
// Empty string means null for the confidence, mood and text fields.
type UpdateRecord struct {
	ID                   string
	InitiativeID         string
	CreatedAt            string
	ConfidencePlan       string
	ConfidenceAlignment  string
	ConfidenceExecution  string
	ConfidenceOutcomes   string
	StatusMood           string
	LatestStatus         string
	BiggestRiskWorry     string
	ProductAligned       bool
	TechAligned          bool
	MarketingAligned     bool
	ClientSuccessAligned bool
	CommercialAligned    bool
}

// UpdateFilters contains filter options for querying updates.
type UpdateFilters struct {
	InitiativeID string
	Limit        int
}

// TaskRepository defines the secondary port for task persistence.
type TaskRepository interface {
	// CreateBatch persists tasks in the given order.
	CreateBatch(ctx context.Context, tasks []*TaskRecord) error

	// List retrieves tasks matching the given filters.
	List(ctx context.Context, filters TaskFilters) ([]*TaskRecord, error)

	// DeleteByUpdate removes every task of an update and returns how many were removed.
	DeleteByUpdate(ctx context.Context, updateID string) (int, error)
}

// TaskRecord represents a task as stored in persistence.
// Empty DueDate means null.
type TaskRecord struct {
	ID           string
	UpdateID     string
	Text         string
	IsCompleted  bool
	DisplayOrder int
	DueDate      string // YYYY-MM-DD
}

// TaskOrder selects how task lists are sorted.
type TaskOrder int

const (
	// TaskOrderDisplay sorts by display_order.
	TaskOrderDisplay TaskOrder = iota
	// TaskOrderDueDate sorts by due_date ascending with nulls last, then display_order.
	TaskOrderDueDate
)

// TaskFilters contains filter options for querying tasks.
type TaskFilters struct {
	UpdateID    string
	OpenOnly    bool // only tasks not yet completed
	WithDueDate bool // only tasks with a due date
	Order       TaskOrder
	Limit       int
}
