package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/example/pulse/internal/adapters/sqlite"
	"github.com/example/pulse/internal/ports/secondary"
)

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	tx := sqlite.NewTransactor(db, zap.NewNop())
	initiatives := sqlite.NewInitiativeRepository(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := initiatives.Create(ctx, &secondary.InitiativeRecord{ID: "INI-001", OwnerID: "u", Name: "A"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if _, err := initiatives.GetByID(ctx, "INI-001"); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected rolled-back initiative to be missing, got %v", err)
	}
}

func TestTransactor_CommitsAndJoinsNested(t *testing.T) {
	db := setupTestDB(t)
	tx := sqlite.NewTransactor(db, nil)
	initiatives := sqlite.NewInitiativeRepository(db)
	ctx := context.Background()

	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := initiatives.Create(ctx, &secondary.InitiativeRecord{ID: "INI-001", OwnerID: "u", Name: "A"}); err != nil {
			return err
		}
		return tx.WithinTx(ctx, func(ctx context.Context) error {
			return initiatives.Create(ctx, &secondary.InitiativeRecord{ID: "INI-002", OwnerID: "u", Name: "B"})
		})
	})
	if err != nil {
		t.Fatalf("WithinTx failed: %v", err)
	}

	list, err := initiatives.List(ctx, secondary.InitiativeFilters{OwnerID: "u"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 committed initiatives, got %d", len(list))
	}
}
