package primary

import (
	"context"
	"time"
)

// UpdateService defines the primary port for status update operations.
type UpdateService interface {
	// SaveUpdate appends a new update snapshot with its task list.
	// Tasks of earlier updates are never touched.
	SaveUpdate(ctx context.Context, req SaveUpdateRequest) (*Update, error)

	// SaveTasksInPlace replaces the task list of the container's update.
	SaveTasksInPlace(ctx context.Context, req SaveTasksRequest) ([]*Task, error)

	// GetLatestUpdate returns an initiative's most recent update with its tasks.
	// Returns nil, nil when the initiative has no updates yet.
	GetLatestUpdate(ctx context.Context, initiativeID string) (*Update, error)

	// GetTimeline returns an initiative's update history, newest first.
	GetTimeline(ctx context.Context, req TimelineRequest) (*Timeline, error)

	// DraftUpdate returns the pre-populated form for the next update.
	DraftUpdate(ctx context.Context, initiativeID string) (*UpdateDraft, error)
}

// Assessment holds the ratings and notes of an update.
// Empty strings mean "not set".
type Assessment struct {
	Plan                 string
	Alignment            string
	Execution            string
	Outcomes             string
	Mood                 string
	LatestStatus         string
	BiggestRisk          string
	ProductAligned       bool
	TechAligned          bool
	MarketingAligned     bool
	ClientSuccessAligned bool
	CommercialAligned    bool
}

// TaskInput is one row of an edited task list.
type TaskInput struct {
	Text      string
	Completed bool
	DueDate   string // YYYY-MM-DD, optional
}

// SaveUpdateRequest contains parameters for saving a versioned update.
type SaveUpdateRequest struct {
	InitiativeID string
	Assessment   Assessment
	Tasks        []TaskInput // in display order
}

// SaveTasksRequest contains parameters for an in-place task save.
type SaveTasksRequest struct {
	UpdateID string
	Tasks    []TaskInput
}

// TimelineRequest contains parameters for fetching a timeline.
type TimelineRequest struct {
	InitiativeID string
	ShowAll      bool
}

// Update represents an update snapshot at the port boundary.
type Update struct {
	ID           string
	InitiativeID string
	CreatedAt    time.Time
	Assessment   Assessment
	Tasks        []*Task
}

// Task represents a task at the port boundary.
type Task struct {
	ID           string
	UpdateID     string
	Text         string
	Completed    bool
	DisplayOrder int
	DueDate      string
}

// Timeline is the windowed update history of one initiative.
type Timeline struct {
	InitiativeID string
	Updates      []*Update // visible entries, newest first
	Total        int
	HasMore      bool
	Expanded     bool
}

// UpdateDraft is the starting point for a new update.
type UpdateDraft struct {
	InitiativeID string
	BasedOn      string // update the draft was copied from; empty for defaults
	Assessment   Assessment
	Tasks        []TaskInput
}
