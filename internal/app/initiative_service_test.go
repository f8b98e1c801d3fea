package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/example/pulse/internal/ports/primary"
	"github.com/example/pulse/internal/ports/secondary"
)

type initiativeFixture struct {
	service     *InitiativeServiceImpl
	initiatives *mockInitiativeRepository
	updates     *mockUpdateRepository
	tasks       *mockTaskRepository
	tx          *mockTransactor
	identity    *mockIdentityProvider
}

func newInitiativeFixture() *initiativeFixture {
	f := &initiativeFixture{
		initiatives: newMockInitiativeRepository(),
		updates:     newMockUpdateRepository(),
		tasks:       newMockTaskRepository(),
		tx:          &mockTransactor{},
		identity:    signedInAs("user-1"),
	}
	f.service = NewInitiativeService(f.initiatives, f.updates, f.tasks, f.identity, f.tx, "Other Projects", zap.NewNop())
	f.service.newID = sequence("INI")
	f.service.now = ticker(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	return f
}

func TestCreateInitiative(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(f *initiativeFixture)
		req      primary.CreateInitiativeRequest
		wantKind string
		wantErr  string
	}{
		{
			name:     "creates standard initiative",
			req:      primary.CreateInitiativeRequest{Name: "  Payments "},
			wantKind: "standard",
		},
		{
			name:     "reserved name becomes container",
			req:      primary.CreateInitiativeRequest{Name: "Other Projects"},
			wantKind: "miscellaneous",
		},
		{
			name: "duplicate name rejected",
			setup: func(f *initiativeFixture) {
				f.initiatives.seed("INI-X", "user-1", "Payments", "standard")
			},
			req:     primary.CreateInitiativeRequest{Name: "Payments"},
			wantErr: `initiative "Payments" already exists`,
		},
		{
			name: "same name allowed for another owner",
			setup: func(f *initiativeFixture) {
				f.initiatives.seed("INI-X", "user-2", "Payments", "standard")
			},
			req:      primary.CreateInitiativeRequest{Name: "Payments"},
			wantKind: "standard",
		},
		{
			name:    "blank name rejected",
			req:     primary.CreateInitiativeRequest{Name: "  "},
			wantErr: "initiative name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInitiativeFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			resp, err := f.service.CreateInitiative(context.Background(), tt.req)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateInitiative failed: %v", err)
			}
			if resp.Initiative.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", resp.Initiative.Kind, tt.wantKind)
			}
			if resp.Initiative.OwnerID != "user-1" {
				t.Errorf("OwnerID = %q, want user-1", resp.Initiative.OwnerID)
			}
			if resp.Initiative.CreatedAt.IsZero() {
				t.Error("expected CreatedAt to be parsed")
			}
			if f.tx.calls != 1 {
				t.Errorf("expected one transaction, got %d", f.tx.calls)
			}
		})
	}
}

func TestCreateInitiative_SecondContainerRejected(t *testing.T) {
	f := newInitiativeFixture()
	f.service.reservedName = "Misc"
	f.initiatives.seed("INI-X", "user-1", "Other Projects", "miscellaneous")

	_, err := f.service.CreateInitiative(context.Background(), primary.CreateInitiativeRequest{Name: "Misc"})
	if err == nil || err.Error() != "a miscellaneous container already exists" {
		t.Fatalf("expected container error, got %v", err)
	}
}

func TestCreateInitiative_NotSignedIn(t *testing.T) {
	f := newInitiativeFixture()
	f.identity.user = nil

	_, err := f.service.CreateInitiative(context.Background(), primary.CreateInitiativeRequest{Name: "Payments"})
	if !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
}

func TestGetInitiative_ScopedToOwner(t *testing.T) {
	f := newInitiativeFixture()
	f.initiatives.seed("INI-1", "user-1", "Mine", "standard")
	f.initiatives.seed("INI-2", "user-2", "Theirs", "standard")
	ctx := context.Background()

	got, err := f.service.GetInitiative(ctx, "INI-1")
	if err != nil {
		t.Fatalf("GetInitiative failed: %v", err)
	}
	if got.Name != "Mine" {
		t.Errorf("expected Mine, got %q", got.Name)
	}

	_, err = f.service.GetInitiative(ctx, "INI-2")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected another user's initiative to be not found, got %v", err)
	}

	_, err = f.service.GetInitiative(ctx, "INI-404")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListInitiatives(t *testing.T) {
	f := newInitiativeFixture()
	f.initiatives.seed("INI-1", "user-1", "Search", "standard")
	f.initiatives.seed("INI-2", "user-1", "Billing", "standard")
	f.initiatives.seed("INI-3", "user-2", "Hidden", "standard")

	got, err := f.service.ListInitiatives(context.Background())
	if err != nil {
		t.Fatalf("ListInitiatives failed: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Billing" || got[1].Name != "Search" {
		t.Errorf("unexpected initiatives: %+v", got)
	}
}

func TestDeleteInitiative(t *testing.T) {
	f := newInitiativeFixture()
	f.initiatives.seed("INI-1", "user-1", "Search", "standard")
	f.initiatives.seed("INI-2", "user-2", "Theirs", "standard")
	ctx := context.Background()

	if err := f.service.DeleteInitiative(ctx, "INI-1"); err != nil {
		t.Fatalf("DeleteInitiative failed: %v", err)
	}
	if _, ok := f.initiatives.initiatives["INI-1"]; ok {
		t.Error("expected INI-1 to be deleted")
	}

	if err := f.service.DeleteInitiative(ctx, "INI-2"); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting another user's initiative, got %v", err)
	}
	if _, ok := f.initiatives.initiatives["INI-2"]; !ok {
		t.Error("another user's initiative must survive")
	}
}

func TestSeedInitiatives(t *testing.T) {
	f := newInitiativeFixture()
	f.initiatives.seed("INI-X", "user-1", "Payments", "standard")

	result, err := f.service.SeedInitiatives(context.Background(), []string{
		"Payments", "Search", "", "Search", "Other Projects",
	})
	if err != nil {
		t.Fatalf("SeedInitiatives failed: %v", err)
	}

	if len(result.Skipped) != 1 || result.Skipped[0] != "Payments" {
		t.Errorf("expected Payments skipped, got %v", result.Skipped)
	}
	if len(result.Created) != 2 {
		t.Fatalf("expected 2 created, got %d", len(result.Created))
	}
	if result.Created[0].Name != "Search" || result.Created[1].Name != "Other Projects" {
		t.Errorf("unexpected created order: %s, %s", result.Created[0].Name, result.Created[1].Name)
	}
	if !result.Created[1].IsContainer() {
		t.Error("expected Other Projects to be seeded as the container")
	}
}

func TestEnsureContainerUpdate(t *testing.T) {
	f := newInitiativeFixture()
	f.initiatives.seed("INI-C", "user-1", "Other Projects", "miscellaneous")
	ctx := context.Background()

	first, err := f.service.EnsureContainerUpdate(ctx, "INI-C")
	if err != nil {
		t.Fatalf("EnsureContainerUpdate failed: %v", err)
	}

	a := first.Assessment
	if a.Plan != "" || a.Alignment != "" || a.Execution != "" {
		t.Errorf("expected unset ratings, got %+v", a)
	}
	if a.Outcomes != "na" || a.Mood != "neutral" || a.LatestStatus != "Miscellaneous projects tracking" {
		t.Errorf("unexpected placeholder: %+v", a)
	}

	second, err := f.service.EnsureContainerUpdate(ctx, "INI-C")
	if err != nil {
		t.Fatalf("second EnsureContainerUpdate failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected the same update, got %s then %s", first.ID, second.ID)
	}
	if len(f.updates.updates) != 1 {
		t.Errorf("expected exactly one container update, got %d", len(f.updates.updates))
	}
}

func TestEnsureContainerUpdate_RejectsStandard(t *testing.T) {
	f := newInitiativeFixture()
	f.initiatives.seed("INI-1", "user-1", "Payments", "standard")

	_, err := f.service.EnsureContainerUpdate(context.Background(), "INI-1")
	if err == nil {
		t.Fatal("expected error for standard initiative")
	}
	if len(f.updates.updates) != 0 {
		t.Error("no update should be created")
	}
}

func TestGetContainer(t *testing.T) {
	t.Run("missing container", func(t *testing.T) {
		f := newInitiativeFixture()

		_, err := f.service.GetContainer(context.Background())
		if !errors.Is(err, secondary.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("tasks ordered by due date with undated last", func(t *testing.T) {
		f := newInitiativeFixture()
		f.initiatives.seed("INI-C", "user-1", "Other Projects", "miscellaneous")
		f.updates.seed("UPD-C", "INI-C", "2026-01-01T00:00:00.000000000Z")
		f.tasks.seed("T1", "UPD-C", "undated", false, 0, "")
		f.tasks.seed("T2", "UPD-C", "later", false, 1, "2026-05-01")
		f.tasks.seed("T3", "UPD-C", "sooner", false, 2, "2026-04-01")

		container, err := f.service.GetContainer(context.Background())
		if err != nil {
			t.Fatalf("GetContainer failed: %v", err)
		}
		if container.UpdateID != "UPD-C" {
			t.Errorf("expected UPD-C, got %s", container.UpdateID)
		}

		var texts []string
		for _, task := range container.Tasks {
			texts = append(texts, task.Text)
		}
		want := []string{"sooner", "later", "undated"}
		if len(texts) != len(want) {
			t.Fatalf("expected %v, got %v", want, texts)
		}
		for i := range want {
			if texts[i] != want[i] {
				t.Errorf("position %d: expected %q, got %q", i, want[i], texts[i])
			}
		}
	})
}
