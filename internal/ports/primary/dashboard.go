package primary

import (
	"context"
	"time"
)

// DashboardService defines the primary port for the initiative overview.
type DashboardService interface {
	// GetDashboard returns a card per initiative, ordered by nearest deadline
	// with the miscellaneous container last.
	GetDashboard(ctx context.Context) (*Dashboard, error)

	// NearestDeadline returns the earliest due date among the open tasks of
	// the initiative's latest update, or "" when there is none.
	NearestDeadline(ctx context.Context, initiativeID string) (string, error)
}

// Dashboard is the ordered set of initiative cards.
type Dashboard struct {
	Today time.Time
	Cards []*InitiativeCard
}

// InitiativeCard summarizes one initiative.
type InitiativeCard struct {
	Initiative      *Initiative
	Latest          *Update // nil when no updates exist yet
	OpenTasks       []*Task
	NearestDeadline string // YYYY-MM-DD, empty when none
	DeadlineText    string // e.g. "in 3 working days"
}
