package primary

import (
	"context"
	"time"
)

// InitiativeService defines the primary port for initiative operations.
// Every call is scoped to the signed-in user.
type InitiativeService interface {
	// CreateInitiative creates a new initiative for the current user.
	CreateInitiative(ctx context.Context, req CreateInitiativeRequest) (*CreateInitiativeResponse, error)

	// GetInitiative retrieves one of the current user's initiatives.
	GetInitiative(ctx context.Context, initiativeID string) (*Initiative, error)

	// ListInitiatives lists the current user's initiatives by name.
	ListInitiatives(ctx context.Context) ([]*Initiative, error)

	// DeleteInitiative deletes an initiative with its whole update history.
	DeleteInitiative(ctx context.Context, initiativeID string) error

	// SeedInitiatives creates any of the given initiatives that do not exist yet.
	SeedInitiatives(ctx context.Context, names []string) (*SeedResult, error)

	// EnsureContainerUpdate returns the container's single update,
	// creating the placeholder on first access.
	EnsureContainerUpdate(ctx context.Context, initiativeID string) (*Update, error)

	// GetContainer returns the miscellaneous container with its task list.
	GetContainer(ctx context.Context) (*Container, error)
}

// CreateInitiativeRequest contains parameters for creating an initiative.
type CreateInitiativeRequest struct {
	Name string
}

// CreateInitiativeResponse contains the result of creating an initiative.
type CreateInitiativeResponse struct {
	InitiativeID string
	Initiative   *Initiative
}

// SeedResult reports which seeded initiatives were created and which already existed.
type SeedResult struct {
	Created []*Initiative
	Skipped []string
}

// Initiative represents an initiative at the port boundary.
type Initiative struct {
	ID        string
	OwnerID   string
	Name      string
	Kind      string // "standard" or "miscellaneous"
	CreatedAt time.Time
}

// IsContainer reports whether this is the miscellaneous task container.
func (i *Initiative) IsContainer() bool {
	return i.Kind == "miscellaneous"
}

// Container is the miscellaneous container with its in-place task list,
// ordered by due date (undated last) then display order.
type Container struct {
	Initiative *Initiative
	UpdateID   string
	Tasks      []*Task
}
