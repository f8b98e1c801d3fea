package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/pulse/internal/core/initiative"
	"github.com/example/pulse/internal/ports/primary"
	"github.com/example/pulse/internal/ports/secondary"
)

// ErrNotSignedIn is returned when an operation needs a user and nobody is signed in.
var ErrNotSignedIn = errors.New("not signed in. Run: pulse login --user-id ID")

// currentUserID resolves the signed-in user's id.
func currentUserID(ctx context.Context, identity secondary.IdentityProvider) (string, error) {
	user, err := identity.CurrentUser(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve current user: %w", err)
	}
	if user == nil || user.ID == "" {
		return "", ErrNotSignedIn
	}
	return user.ID, nil
}

// ownedInitiative loads an initiative and checks it belongs to the signed-in user.
// Missing and foreign initiatives are both reported as not found.
func ownedInitiative(ctx context.Context, identity secondary.IdentityProvider, repo secondary.InitiativeRepository, id string) (*secondary.InitiativeRecord, error) {
	userID, err := currentUserID(ctx, identity)
	if err != nil {
		return nil, err
	}

	record, err := repo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, secondary.ErrNotFound) {
		return nil, fmt.Errorf("failed to get initiative: %w", err)
	}

	check := initiative.OwnershipContext{InitiativeID: id, CallerID: userID}
	if record != nil {
		check.Exists = true
		check.OwnerID = record.OwnerID
	}
	if !initiative.CanAccessInitiative(check).Allowed {
		return nil, fmt.Errorf("initiative %s %w", id, secondary.ErrNotFound)
	}

	return record, nil
}

// parseTimestamp reads a stored CreatedAt value. Unparseable values yield the zero time.
func parseTimestamp(value string) time.Time {
	for _, layout := range []string{secondary.TimestampLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func recordToInitiative(r *secondary.InitiativeRecord) *primary.Initiative {
	return &primary.Initiative{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Name:      r.Name,
		Kind:      r.Kind,
		CreatedAt: parseTimestamp(r.CreatedAt),
	}
}

func recordToTask(r *secondary.TaskRecord) *primary.Task {
	return &primary.Task{
		ID:           r.ID,
		UpdateID:     r.UpdateID,
		Text:         r.Text,
		Completed:    r.IsCompleted,
		DisplayOrder: r.DisplayOrder,
		DueDate:      r.DueDate,
	}
}

func recordsToTasks(records []*secondary.TaskRecord) []*primary.Task {
	tasks := make([]*primary.Task, len(records))
	for i, r := range records {
		tasks[i] = recordToTask(r)
	}
	return tasks
}

func recordToUpdate(r *secondary.UpdateRecord, tasks []*secondary.TaskRecord) *primary.Update {
	return &primary.Update{
		ID:           r.ID,
		InitiativeID: r.InitiativeID,
		CreatedAt:    parseTimestamp(r.CreatedAt),
		Assessment: primary.Assessment{
			Plan:                 r.ConfidencePlan,
			Alignment:            r.ConfidenceAlignment,
			Execution:            r.ConfidenceExecution,
			Outcomes:             r.ConfidenceOutcomes,
			Mood:                 r.StatusMood,
			LatestStatus:         r.LatestStatus,
			BiggestRisk:          r.BiggestRiskWorry,
			ProductAligned:       r.ProductAligned,
			TechAligned:          r.TechAligned,
			MarketingAligned:     r.MarketingAligned,
			ClientSuccessAligned: r.ClientSuccessAligned,
			CommercialAligned:    r.CommercialAligned,
		},
		Tasks: recordsToTasks(tasks),
	}
}
