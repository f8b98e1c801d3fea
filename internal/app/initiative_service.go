package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/pulse/internal/core/initiative"
	"github.com/example/pulse/internal/core/update"
	"github.com/example/pulse/internal/logging"
	"github.com/example/pulse/internal/ports/primary"
	"github.com/example/pulse/internal/ports/secondary"
)

// InitiativeServiceImpl implements the InitiativeService interface.
type InitiativeServiceImpl struct {
	initiativeRepo secondary.InitiativeRepository
	updateRepo     secondary.UpdateRepository
	taskRepo       secondary.TaskRepository
	identity       secondary.IdentityProvider
	tx             secondary.Transactor
	reservedName   string
	logger         *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewInitiativeService creates a new InitiativeService with injected dependencies.
// reservedName is the initiative name that becomes the miscellaneous container.
func NewInitiativeService(
	initiativeRepo secondary.InitiativeRepository,
	updateRepo secondary.UpdateRepository,
	taskRepo secondary.TaskRepository,
	identity secondary.IdentityProvider,
	tx secondary.Transactor,
	reservedName string,
	logger *zap.Logger,
) *InitiativeServiceImpl {
	return &InitiativeServiceImpl{
		initiativeRepo: initiativeRepo,
		updateRepo:     updateRepo,
		taskRepo:       taskRepo,
		identity:       identity,
		tx:             tx,
		reservedName:   reservedName,
		logger:         logging.OrNop(logger),
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

// CreateInitiative creates a new initiative for the current user.
func (s *InitiativeServiceImpl) CreateInitiative(ctx context.Context, req primary.CreateInitiativeRequest) (*primary.CreateInitiativeResponse, error) {
	userID, err := currentUserID(ctx, s.identity)
	if err != nil {
		return nil, err
	}

	var id string
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var createErr error
		id, createErr = s.create(ctx, userID, req.Name)
		return createErr
	})
	if err != nil {
		return nil, err
	}

	// Fetch created initiative
	created, err := s.initiativeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created initiative: %w", err)
	}

	return &primary.CreateInitiativeResponse{
		InitiativeID: created.ID,
		Initiative:   recordToInitiative(created),
	}, nil
}

// create checks the creation guards and inserts one initiative.
func (s *InitiativeServiceImpl) create(ctx context.Context, userID, rawName string) (string, error) {
	name := strings.TrimSpace(rawName)
	kind := initiative.ResolveKind(name, s.reservedName)

	guardCtx := initiative.CreateInitiativeContext{
		OwnerID: userID,
		Name:    name,
		Kind:    kind,
	}

	if name != "" {
		_, err := s.initiativeRepo.GetByName(ctx, userID, name)
		switch {
		case err == nil:
			guardCtx.NameTaken = true
		case !errors.Is(err, secondary.ErrNotFound):
			return "", fmt.Errorf("failed to check initiative name: %w", err)
		}
	}

	if kind == initiative.KindMiscellaneous {
		containers, err := s.initiativeRepo.List(ctx, secondary.InitiativeFilters{
			OwnerID: userID,
			Kind:    string(initiative.KindMiscellaneous),
		})
		if err != nil {
			return "", fmt.Errorf("failed to check miscellaneous container: %w", err)
		}
		guardCtx.ContainerExists = len(containers) > 0
	}

	if err := initiative.CanCreateInitiative(guardCtx).Error(); err != nil {
		return "", err
	}

	record := &secondary.InitiativeRecord{
		ID:        s.newID(),
		OwnerID:   userID,
		Name:      name,
		Kind:      string(kind),
		CreatedAt: s.now().UTC().Format(secondary.TimestampLayout),
	}
	if err := s.initiativeRepo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("failed to create initiative: %w", err)
	}

	s.logger.Info("initiative created",
		zap.String("initiative_id", record.ID),
		zap.String("kind", record.Kind),
	)
	return record.ID, nil
}

// GetInitiative retrieves one of the current user's initiatives.
func (s *InitiativeServiceImpl) GetInitiative(ctx context.Context, initiativeID string) (*primary.Initiative, error) {
	record, err := ownedInitiative(ctx, s.identity, s.initiativeRepo, initiativeID)
	if err != nil {
		return nil, err
	}
	return recordToInitiative(record), nil
}

// ListInitiatives lists the current user's initiatives by name.
func (s *InitiativeServiceImpl) ListInitiatives(ctx context.Context) ([]*primary.Initiative, error) {
	userID, err := currentUserID(ctx, s.identity)
	if err != nil {
		return nil, err
	}

	records, err := s.initiativeRepo.List(ctx, secondary.InitiativeFilters{OwnerID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list initiatives: %w", err)
	}

	initiatives := make([]*primary.Initiative, len(records))
	for i, r := range records {
		initiatives[i] = recordToInitiative(r)
	}
	return initiatives, nil
}

// DeleteInitiative deletes an initiative with its whole update history.
func (s *InitiativeServiceImpl) DeleteInitiative(ctx context.Context, initiativeID string) error {
	if _, err := ownedInitiative(ctx, s.identity, s.initiativeRepo, initiativeID); err != nil {
		return err
	}

	if err := s.initiativeRepo.Delete(ctx, initiativeID); err != nil {
		return fmt.Errorf("failed to delete initiative: %w", err)
	}

	s.logger.Info("initiative deleted", zap.String("initiative_id", initiativeID))
	return nil
}

// SeedInitiatives creates any of the given initiatives that do not exist yet.
// Either every missing initiative is created or none is.
func (s *InitiativeServiceImpl) SeedInitiatives(ctx context.Context, names []string) (*primary.SeedResult, error) {
	userID, err := currentUserID(ctx, s.identity)
	if err != nil {
		return nil, err
	}

	result := &primary.SeedResult{}
	var createdIDs []string
	seen := make(map[string]bool)

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, raw := range names {
			name := strings.TrimSpace(raw)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true

			_, err := s.initiativeRepo.GetByName(ctx, userID, name)
			if err == nil {
				result.Skipped = append(result.Skipped, name)
				continue
			}
			if !errors.Is(err, secondary.ErrNotFound) {
				return fmt.Errorf("failed to check initiative name: %w", err)
			}

			id, err := s.create(ctx, userID, name)
			if err != nil {
				return fmt.Errorf("failed to seed %q: %w", name, err)
			}
			createdIDs = append(createdIDs, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, id := range createdIDs {
		record, err := s.initiativeRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch seeded initiative: %w", err)
		}
		result.Created = append(result.Created, recordToInitiative(record))
	}
	return result, nil
}

// EnsureContainerUpdate returns the container's single update, creating the
// placeholder on first access.
func (s *InitiativeServiceImpl) EnsureContainerUpdate(ctx context.Context, initiativeID string) (*primary.Update, error) {
	record, err := ownedInitiative(ctx, s.identity, s.initiativeRepo, initiativeID)
	if err != nil {
		return nil, err
	}
	if record.Kind != string(initiative.KindMiscellaneous) {
		return nil, fmt.Errorf("initiative %s is not the miscellaneous container", initiativeID)
	}

	var updateID string
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		latest, err := s.updateRepo.GetLatest(ctx, initiativeID)
		if err != nil {
			return fmt.Errorf("failed to get container update: %w", err)
		}
		if latest != nil {
			updateID = latest.ID
			return nil
		}

		placeholder := formToRecord(update.ContainerPlaceholder())
		placeholder.ID = s.newID()
		placeholder.InitiativeID = initiativeID
		placeholder.CreatedAt = s.now().UTC().Format(secondary.TimestampLayout)
		if err := s.updateRepo.Create(ctx, placeholder); err != nil {
			return fmt.Errorf("failed to create container update: %w", err)
		}
		updateID = placeholder.ID
		s.logger.Info("container update created",
			zap.String("initiative_id", initiativeID),
			zap.String("update_id", updateID),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	updateRecord, err := s.updateRepo.GetByID(ctx, updateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch container update: %w", err)
	}
	tasks, err := s.taskRepo.List(ctx, secondary.TaskFilters{UpdateID: updateID, Order: secondary.TaskOrderDueDate})
	if err != nil {
		return nil, fmt.Errorf("failed to list container tasks: %w", err)
	}
	return recordToUpdate(updateRecord, tasks), nil
}

// GetContainer returns the miscellaneous container with its task list.
func (s *InitiativeServiceImpl) GetContainer(ctx context.Context) (*primary.Container, error) {
	userID, err := currentUserID(ctx, s.identity)
	if err != nil {
		return nil, err
	}

	containers, err := s.initiativeRepo.List(ctx, secondary.InitiativeFilters{
		OwnerID: userID,
		Kind:    string(initiative.KindMiscellaneous),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find miscellaneous container: %w", err)
	}
	if len(containers) == 0 {
		return nil, fmt.Errorf("miscellaneous container %w. Create it with: pulse initiative create %q",
			secondary.ErrNotFound, s.reservedName)
	}

	containerUpdate, err := s.EnsureContainerUpdate(ctx, containers[0].ID)
	if err != nil {
		return nil, err
	}

	return &primary.Container{
		Initiative: recordToInitiative(containers[0]),
		UpdateID:   containerUpdate.ID,
		Tasks:      containerUpdate.Tasks,
	}, nil
}

// Ensure InitiativeServiceImpl implements the interface
var _ primary.InitiativeService = (*InitiativeServiceImpl)(nil)
