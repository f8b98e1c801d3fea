package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/pulse/internal/core/initiative"
	"github.com/example/pulse/internal/core/timeline"
	"github.com/example/pulse/internal/core/update"
	"github.com/example/pulse/internal/logging"
	"github.com/example/pulse/internal/ports/primary"
	"github.com/example/pulse/internal/ports/secondary"
)

// fetchConcurrency bounds per-initiative and per-update read fan-out.
const fetchConcurrency = 8

// UpdateServiceImpl implements the UpdateService interface.
type UpdateServiceImpl struct {
	initiativeRepo secondary.InitiativeRepository
	updateRepo     secondary.UpdateRepository
	taskRepo       secondary.TaskRepository
	identity       secondary.IdentityProvider
	tx             secondary.Transactor
	timelineWindow int
	logger         *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewUpdateService creates a new UpdateService with injected dependencies.
func NewUpdateService(
	initiativeRepo secondary.InitiativeRepository,
	updateRepo secondary.UpdateRepository,
	taskRepo secondary.TaskRepository,
	identity secondary.IdentityProvider,
	tx secondary.Transactor,
	timelineWindow int,
	logger *zap.Logger,
) *UpdateServiceImpl {
	return &UpdateServiceImpl{
		initiativeRepo: initiativeRepo,
		updateRepo:     updateRepo,
		taskRepo:       taskRepo,
		identity:       identity,
		tx:             tx,
		timelineWindow: timelineWindow,
		logger:         logging.OrNop(logger),
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

// SaveUpdate appends a new update snapshot with its task list.
// The update row and its tasks are written in one transaction.
func (s *UpdateServiceImpl) SaveUpdate(ctx context.Context, req primary.SaveUpdateRequest) (*primary.Update, error) {
	record, err := ownedInitiative(ctx, s.identity, s.initiativeRepo, req.InitiativeID)
	if err != nil {
		return nil, err
	}

	guard := initiative.CanSaveUpdate(initiative.SaveUpdateContext{
		OwnershipContext: initiative.OwnershipContext{
			InitiativeID: record.ID,
			Exists:       true,
			OwnerID:      record.OwnerID,
		},
		Kind: initiative.Kind(record.Kind),
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	form := assessmentToForm(req.Assessment)
	inputs := toTaskInputs(req.Tasks)
	if err := update.Validate(form, inputs); err != nil {
		return nil, err
	}

	updateRecord := formToRecord(form)
	updateRecord.ID = s.newID()
	updateRecord.InitiativeID = record.ID
	updateRecord.CreatedAt = s.now().UTC().Format(secondary.TimestampLayout)
	taskRecords := s.taskRecords(updateRecord.ID, update.PlanSnapshotTasks(inputs))

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.updateRepo.Create(ctx, updateRecord); err != nil {
			return fmt.Errorf("failed to create update: %w", err)
		}
		if err := s.taskRepo.CreateBatch(ctx, taskRecords); err != nil {
			return fmt.Errorf("failed to save tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("update saved",
		zap.String("initiative_id", record.ID),
		zap.String("update_id", updateRecord.ID),
		zap.Int("tasks", len(taskRecords)),
	)

	// Fetch created update
	return s.loadUpdate(ctx, updateRecord.ID)
}

// SaveTasksInPlace replaces the task list of the container's update.
// Blank tasks are dropped; the rest are renumbered in the given order.
func (s *UpdateServiceImpl) SaveTasksInPlace(ctx context.Context, req primary.SaveTasksRequest) ([]*primary.Task, error) {
	userID, err := currentUserID(ctx, s.identity)
	if err != nil {
		return nil, err
	}

	guardCtx := initiative.SaveTasksInPlaceContext{
		UpdateID:         req.UpdateID,
		OwnershipContext: initiative.OwnershipContext{CallerID: userID},
	}

	updateRecord, err := s.updateRepo.GetByID(ctx, req.UpdateID)
	switch {
	case err == nil:
		guardCtx.UpdateExists = true
		initiativeRecord, err := s.initiativeRepo.GetByID(ctx, updateRecord.InitiativeID)
		if err != nil && !errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("failed to get initiative: %w", err)
		}
		guardCtx.InitiativeID = updateRecord.InitiativeID
		if initiativeRecord != nil {
			guardCtx.Exists = true
			guardCtx.OwnerID = initiativeRecord.OwnerID
			guardCtx.Kind = initiative.Kind(initiativeRecord.Kind)
		}
	case !errors.Is(err, secondary.ErrNotFound):
		return nil, fmt.Errorf("failed to get update: %w", err)
	}

	if err := initiative.CanSaveTasksInPlace(guardCtx).Error(); err != nil {
		return nil, err
	}

	inputs := toTaskInputs(req.Tasks)
	if err := update.ValidateTasks(inputs); err != nil {
		return nil, err
	}
	taskRecords := s.taskRecords(req.UpdateID, update.PlanInPlaceTasks(inputs))

	var removed int
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		n, err := s.taskRepo.DeleteByUpdate(ctx, req.UpdateID)
		if err != nil {
			return fmt.Errorf("failed to clear tasks: %w", err)
		}
		removed = n
		if err := s.taskRepo.CreateBatch(ctx, taskRecords); err != nil {
			return fmt.Errorf("failed to save tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("container tasks saved",
		zap.String("update_id", req.UpdateID),
		zap.Int("removed", removed),
		zap.Int("tasks", len(taskRecords)),
	)

	tasks, err := s.taskRepo.List(ctx, secondary.TaskFilters{UpdateID: req.UpdateID, Order: secondary.TaskOrderDueDate})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return recordsToTasks(tasks), nil
}

// GetLatestUpdate returns an initiative's most recent update with its tasks,
// or nil when it has none.
func (s *UpdateServiceImpl) GetLatestUpdate(ctx context.Context, initiativeID string) (*primary.Update, error) {
	if _, err := ownedInitiative(ctx, s.identity, s.initiativeRepo, initiativeID); err != nil {
		return nil, err
	}

	latest, err := s.updateRepo.GetLatest(ctx, initiativeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest update: %w", err)
	}
	if latest == nil {
		return nil, nil
	}

	tasks, err := s.taskRepo.List(ctx, secondary.TaskFilters{UpdateID: latest.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return recordToUpdate(latest, tasks), nil
}

// GetTimeline returns an initiative's update history, newest first, each
// update with the task list saved alongside it.
func (s *UpdateServiceImpl) GetTimeline(ctx context.Context, req primary.TimelineRequest) (*primary.Timeline, error) {
	if _, err := ownedInitiative(ctx, s.identity, s.initiativeRepo, req.InitiativeID); err != nil {
		return nil, err
	}

	records, err := s.updateRepo.List(ctx, secondary.UpdateFilters{InitiativeID: req.InitiativeID})
	if err != nil {
		return nil, fmt.Errorf("failed to list updates: %w", err)
	}

	window := timeline.Apply(records, s.timelineWindow, req.ShowAll)

	updates := make([]*primary.Update, len(window.Visible))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, r := range window.Visible {
		g.Go(func() error {
			tasks, err := s.taskRepo.List(gctx, secondary.TaskFilters{UpdateID: r.ID})
			if err != nil {
				return fmt.Errorf("failed to list tasks for update %s: %w", r.ID, err)
			}
			updates[i] = recordToUpdate(r, tasks)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &primary.Timeline{
		InitiativeID: req.InitiativeID,
		Updates:      updates,
		Total:        window.Total,
		HasMore:      window.HasMore,
		Expanded:     window.Expanded,
	}, nil
}

// DraftUpdate returns the form for the next update, copied from the latest
// update when there is one.
func (s *UpdateServiceImpl) DraftUpdate(ctx context.Context, initiativeID string) (*primary.UpdateDraft, error) {
	record, err := ownedInitiative(ctx, s.identity, s.initiativeRepo, initiativeID)
	if err != nil {
		return nil, err
	}
	if record.Kind == string(initiative.KindMiscellaneous) {
		return nil, fmt.Errorf("initiative %s is the miscellaneous container; edit its tasks with: pulse other save", initiativeID)
	}

	latest, err := s.GetLatestUpdate(ctx, initiativeID)
	if err != nil {
		return nil, err
	}

	draft := &primary.UpdateDraft{InitiativeID: initiativeID}
	if latest == nil {
		draft.Assessment = formToAssessment(update.DefaultForm())
		return draft, nil
	}

	draft.BasedOn = latest.ID
	draft.Assessment = formToAssessment(update.Prefill(assessmentToForm(latest.Assessment)))
	for _, t := range latest.Tasks {
		draft.Tasks = append(draft.Tasks, primary.TaskInput{
			Text:      t.Text,
			Completed: t.Completed,
			DueDate:   t.DueDate,
		})
	}
	return draft, nil
}

// loadUpdate reads an update and its tasks back from the store.
func (s *UpdateServiceImpl) loadUpdate(ctx context.Context, updateID string) (*primary.Update, error) {
	record, err := s.updateRepo.GetByID(ctx, updateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved update: %w", err)
	}
	tasks, err := s.taskRepo.List(ctx, secondary.TaskFilters{UpdateID: updateID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved tasks: %w", err)
	}
	return recordToUpdate(record, tasks), nil
}

func (s *UpdateServiceImpl) taskRecords(updateID string, planned []update.PlannedTask) []*secondary.TaskRecord {
	records := make([]*secondary.TaskRecord, len(planned))
	for i, p := range planned {
		records[i] = &secondary.TaskRecord{
			ID:           s.newID(),
			UpdateID:     updateID,
			Text:         p.Text,
			IsCompleted:  p.Completed,
			DisplayOrder: p.DisplayOrder,
			DueDate:      p.DueDate,
		}
	}
	return records
}

func toTaskInputs(tasks []primary.TaskInput) []update.TaskInput {
	inputs := make([]update.TaskInput, len(tasks))
	for i, t := range tasks {
		inputs[i] = update.TaskInput{Text: t.Text, Completed: t.Completed, DueDate: t.DueDate}
	}
	return inputs
}

func assessmentToForm(a primary.Assessment) update.Form {
	return update.Form{
		Plan:         update.Level(a.Plan),
		Alignment:    update.Level(a.Alignment),
		Execution:    update.Level(a.Execution),
		Outcomes:     update.Level(a.Outcomes),
		Mood:         update.Mood(a.Mood),
		LatestStatus: a.LatestStatus,
		BiggestRisk:  a.BiggestRisk,
		Departments: update.Departments{
			Product:       a.ProductAligned,
			Tech:          a.TechAligned,
			Marketing:     a.MarketingAligned,
			ClientSuccess: a.ClientSuccessAligned,
			Commercial:    a.CommercialAligned,
		},
	}
}

func formToAssessment(f update.Form) primary.Assessment {
	return primary.Assessment{
		Plan:                 string(f.Plan),
		Alignment:            string(f.Alignment),
		Execution:            string(f.Execution),
		Outcomes:             string(f.Outcomes),
		Mood:                 string(f.Mood),
		LatestStatus:         f.LatestStatus,
		BiggestRisk:          f.BiggestRisk,
		ProductAligned:       f.Departments.Product,
		TechAligned:          f.Departments.Tech,
		MarketingAligned:     f.Departments.Marketing,
		ClientSuccessAligned: f.Departments.ClientSuccess,
		CommercialAligned:    f.Departments.Commercial,
	}
}

func formToRecord(f update.Form) *secondary.UpdateRecord {
	return &secondary.UpdateRecord{
		ConfidencePlan:       string(f.Plan),
		ConfidenceAlignment:  string(f.Alignment),
		ConfidenceExecution:  string(f.Execution),
		ConfidenceOutcomes:   string(f.Outcomes),
		StatusMood:           string(f.Mood),
		LatestStatus:         f.LatestStatus,
		BiggestRiskWorry:     f.BiggestRisk,
		ProductAligned:       f.Departments.Product,
		TechAligned:          f.Departments.Tech,
		MarketingAligned:     f.Departments.Marketing,
		ClientSuccessAligned: f.Departments.ClientSuccess,
		CommercialAligned:    f.Departments.Commercial,
	}
}

// Ensure UpdateServiceImpl implements the interface
var _ primary.UpdateService = (*UpdateServiceImpl)(nil)
