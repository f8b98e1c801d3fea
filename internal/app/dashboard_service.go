package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/example/pulse/internal/core/initiative"
	"github.com/example/pulse/internal/core/ordering"
	"github.com/example/pulse/internal/core/workday"
	"github.com/example/pulse/internal/logging"
	"github.com/example/pulse/internal/ports/primary"
	"github.com/example/pulse/internal/ports/secondary"
)

// DashboardServiceImpl implements the DashboardService interface.
type DashboardServiceImpl struct {
	initiativeRepo secondary.InitiativeRepository
	updateRepo     secondary.UpdateRepository
	taskRepo       secondary.TaskRepository
	identity       secondary.IdentityProvider
	collation      language.Tag
	logger         *zap.Logger

	now func() time.Time
}

// NewDashboardService creates a new DashboardService with injected dependencies.
// Initiative names are compared using the collation rules of tag.
func NewDashboardService(
	initiativeRepo secondary.InitiativeRepository,
	updateRepo secondary.UpdateRepository,
	taskRepo secondary.TaskRepository,
	identity secondary.IdentityProvider,
	tag language.Tag,
	logger *zap.Logger,
) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		initiativeRepo: initiativeRepo,
		updateRepo:     updateRepo,
		taskRepo:       taskRepo,
		identity:       identity,
		collation:      tag,
		logger:         logging.OrNop(logger),
		now:            time.Now,
	}
}

// GetDashboard builds every card concurrently, then orders them by nearest
// deadline with the miscellaneous container last.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*primary.Dashboard, error) {
	userID, err := currentUserID(ctx, s.identity)
	if err != nil {
		return nil, err
	}

	records, err := s.initiativeRepo.List(ctx, secondary.InitiativeFilters{OwnerID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list initiatives: %w", err)
	}

	today := s.now()
	start := time.Now()

	cards := make([]*primary.InitiativeCard, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, r := range records {
		g.Go(func() error {
			card, err := s.buildCard(gctx, r, today)
			if err != nil {
				return err
			}
			cards[i] = card
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]ordering.Entry[*primary.InitiativeCard], len(cards))
	for i, card := range cards {
		entry := ordering.Entry[*primary.InitiativeCard]{
			Item:     card,
			Name:     card.Initiative.Name,
			Reserved: card.Initiative.Kind == string(initiative.KindMiscellaneous),
		}
		if card.NearestDeadline != "" {
			deadline, err := workday.ParseDate(card.NearestDeadline, today.Location())
			if err != nil {
				return nil, fmt.Errorf("initiative %s: %w", card.Initiative.ID, err)
			}
			entry.Deadline = deadline
		}
		entries[i] = entry
	}

	s.logger.Debug("dashboard built",
		zap.Int("initiatives", len(cards)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &primary.Dashboard{
		Today: today,
		Cards: ordering.Order(entries, s.collation),
	}, nil
}

// NearestDeadline returns the earliest due date among the open tasks of the
// initiative's latest update, or "" when there is none.
func (s *DashboardServiceImpl) NearestDeadline(ctx context.Context, initiativeID string) (string, error) {
	if _, err := ownedInitiative(ctx, s.identity, s.initiativeRepo, initiativeID); err != nil {
		return "", err
	}

	latest, err := s.updateRepo.GetLatest(ctx, initiativeID)
	if err != nil {
		return "", fmt.Errorf("failed to get latest update: %w", err)
	}
	if latest == nil {
		return "", nil
	}
	return s.nearestDeadline(ctx, latest.ID)
}

// buildCard gathers one initiative's latest update, open tasks and deadline.
// Only the latest update is consulted; older snapshots never contribute.
func (s *DashboardServiceImpl) buildCard(ctx context.Context, r *secondary.InitiativeRecord, today time.Time) (*primary.InitiativeCard, error) {
	card := &primary.InitiativeCard{Initiative: recordToInitiative(r)}

	latest, err := s.updateRepo.GetLatest(ctx, r.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest update for %s: %w", r.ID, err)
	}
	if latest == nil {
		return card, nil
	}

	order := secondary.TaskOrderDisplay
	if r.Kind == string(initiative.KindMiscellaneous) {
		order = secondary.TaskOrderDueDate
	}
	open, err := s.taskRepo.List(ctx, secondary.TaskFilters{UpdateID: latest.ID, OpenOnly: true, Order: order})
	if err != nil {
		return nil, fmt.Errorf("failed to list open tasks for %s: %w", r.ID, err)
	}
	card.Latest = recordToUpdate(latest, nil)
	card.OpenTasks = recordsToTasks(open)

	card.NearestDeadline, err = s.nearestDeadline(ctx, latest.ID)
	if err != nil {
		return nil, err
	}
	card.DeadlineText, err = workday.FormatUntil(today, card.NearestDeadline)
	if err != nil {
		// Rows written before due dates were validated may hold free text.
		s.logger.Warn("ignoring unreadable due date",
			zap.String("initiative_id", r.ID),
			zap.String("due_date", card.NearestDeadline),
			zap.Error(err),
		)
		card.NearestDeadline = ""
		card.DeadlineText = ""
	}
	return card, nil
}

func (s *DashboardServiceImpl) nearestDeadline(ctx context.Context, updateID string) (string, error) {
	tasks, err := s.taskRepo.List(ctx, secondary.TaskFilters{
		UpdateID:    updateID,
		OpenOnly:    true,
		WithDueDate: true,
		Order:       secondary.TaskOrderDueDate,
		Limit:       1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to find nearest deadline: %w", err)
	}
	if len(tasks) == 0 {
		return "", nil
	}
	return tasks[0].DueDate, nil
}

// Ensure DashboardServiceImpl implements the interface
var _ primary.DashboardService = (*DashboardServiceImpl)(nil)
