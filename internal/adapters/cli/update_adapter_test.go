package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/example/pulse/internal/ports/primary"
)

func draftWithTasks(id string) func(ctx context.Context, _ string) (*primary.UpdateDraft, error) {
	return func(ctx context.Context, _ string) (*primary.UpdateDraft, error) {
		return &primary.UpdateDraft{
			InitiativeID: id,
			BasedOn:      "UPD-001",
			Assessment: primary.Assessment{
				Plan: "good", Alignment: "good", Execution: "medium", Outcomes: "na", Mood: "good",
				LatestStatus: "On track", ProductAligned: true,
			},
			Tasks: []primary.TaskInput{{Text: "Design"}, {Text: "Build", DueDate: "2026-03-20"}},
		}, nil
	}
}

func TestUpdateAdapter_SubmitAppliesOptionsToDraft(t *testing.T) {
	service := &mockUpdateService{draftFn: draftWithTasks("INI-001")}
	var out bytes.Buffer
	adapter := NewUpdateAdapter(service, &out)

	status := "Slipping"
	err := adapter.Submit(context.Background(), "INI-001", SubmitOptions{
		Execution: "poor",
		Mood:      "concerned",
		Status:    &status,
		Aligned:   []string{"tech", "commercial"},
		AddTasks:  []string{"Launch"},
		Due:       map[int]string{3: "2026-04-01"},
		Done:      []int{1},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	want := primary.SaveUpdateRequest{
		InitiativeID: "INI-001",
		Assessment: primary.Assessment{
			Plan: "good", Alignment: "good", Execution: "poor", Outcomes: "na", Mood: "concerned",
			LatestStatus: "Slipping", TechAligned: true, CommercialAligned: true,
		},
		Tasks: []primary.TaskInput{
			{Text: "Design", Completed: true},
			{Text: "Build", DueDate: "2026-03-20"},
			{Text: "Launch", DueDate: "2026-04-01"},
		},
	}
	if diff := cmp.Diff(want, service.lastSaveReq); diff != "" {
		t.Errorf("save request mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "✓ Saved update UPD-NEW for initiative INI-001 (3 tasks)") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestUpdateAdapter_SubmitDocumentReplacesDraft(t *testing.T) {
	service := &mockUpdateService{draftFn: draftWithTasks("INI-001")}
	adapter := NewUpdateAdapter(service, &bytes.Buffer{})

	doc := &UpdateDocument{
		Plan: "excellent", Alignment: "good", Execution: "good", Outcomes: "good", Mood: "great",
		Aligned: []string{"marketing"},
		Tasks:   []TaskDocument{{Text: "Celebrate", Done: true}},
	}
	if err := adapter.Submit(context.Background(), "INI-001", SubmitOptions{Document: doc, Plan: "good"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	got := service.lastSaveReq
	if got.Assessment.Plan != "good" {
		t.Errorf("flag should override document, got plan %q", got.Assessment.Plan)
	}
	if got.Assessment.ProductAligned || !got.Assessment.MarketingAligned {
		t.Errorf("departments not taken from document: %+v", got.Assessment)
	}
	if got.Assessment.LatestStatus != "" {
		t.Errorf("status should come from document, got %q", got.Assessment.LatestStatus)
	}
	if diff := cmp.Diff([]primary.TaskInput{{Text: "Celebrate", Completed: true}}, got.Tasks); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateAdapter_SubmitRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts SubmitOptions
		want string
	}{
		{name: "due on missing task", opts: SubmitOptions{Due: map[int]string{5: "2026-04-01"}}, want: "task 5 does not exist"},
		{name: "done on task zero", opts: SubmitOptions{Done: []int{0}}, want: "task 0 does not exist"},
		{name: "unknown department", opts: SubmitOptions{Aligned: []string{"legal"}}, want: `unknown department "legal"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockUpdateService{draftFn: draftWithTasks("INI-001")}
			adapter := NewUpdateAdapter(service, &bytes.Buffer{})

			err := adapter.Submit(context.Background(), "INI-001", tt.opts)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
			if service.saveCalls != 0 {
				t.Error("nothing should be saved")
			}
		})
	}
}

func TestUpdateAdapter_SubmitPropagatesServiceError(t *testing.T) {
	service := &mockUpdateService{
		saveFn: func(ctx context.Context, req primary.SaveUpdateRequest) (*primary.Update, error) {
			return nil, errors.New("invalid update: plan is required")
		},
	}
	var out bytes.Buffer
	adapter := NewUpdateAdapter(service, &out)

	err := adapter.Submit(context.Background(), "INI-001", SubmitOptions{})
	if err == nil || err.Error() != "invalid update: plan is required" {
		t.Fatalf("expected service error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestUpdateAdapter_Draft(t *testing.T) {
	service := &mockUpdateService{draftFn: draftWithTasks("INI-001")}
	var out bytes.Buffer
	adapter := NewUpdateAdapter(service, &out)

	if err := adapter.Draft(context.Background(), "INI-001"); err != nil {
		t.Fatalf("Draft failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"# Draft for INI-001, copied from update UPD-001",
		"plan: good",
		"outcomes: na",
		"status: On track",
		"- product",
		"due: \"2026-03-20\"",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("draft output missing %q:\n%s", want, output)
		}
	}
}

func TestUpdateAdapter_LatestNone(t *testing.T) {
	var out bytes.Buffer
	adapter := NewUpdateAdapter(&mockUpdateService{}, &out)

	if err := adapter.Latest(context.Background(), "INI-001"); err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if out.String() != "No updates yet for initiative INI-001\n" {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestUpdateAdapter_Latest(t *testing.T) {
	service := &mockUpdateService{
		latestFn: func(ctx context.Context, id string) (*primary.Update, error) {
			return &primary.Update{
				ID:           "UPD-002",
				InitiativeID: id,
				CreatedAt:    time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
				Assessment: primary.Assessment{
					Plan: "good", Alignment: "excellent", Execution: "poor", Outcomes: "na", Mood: "warning",
					BiggestRisk: "Vendor delay", ClientSuccessAligned: true,
				},
				Tasks: []*primary.Task{{Text: "Sign contract", Completed: true}, {Text: "Integrate", DueDate: "2026-03-10"}},
			}, nil
		},
	}
	var out bytes.Buffer
	adapter := NewUpdateAdapter(service, &out)

	if err := adapter.Latest(context.Background(), "INI-001"); err != nil {
		t.Fatalf("Latest failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"UPD-002",
		"⚠️ Warning",
		"Plan: Good  Alignment: Excellent  Execution: Poor  Outcomes: N/A",
		"Risk:   Vendor delay",
		"Aligned: Client Success",
		"1. [x] Sign contract",
		"2. [ ] Integrate  (due 2026-03-10)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestUpdateAdapter_Timeline(t *testing.T) {
	tests := []struct {
		name     string
		showAll  bool
		timeline *primary.Timeline
		want     string
		notWant  string
	}{
		{
			name:     "no updates",
			timeline: &primary.Timeline{InitiativeID: "INI-001"},
			want:     "No updates yet for initiative INI-001",
		},
		{
			name: "collapsed with more",
			timeline: &primary.Timeline{
				InitiativeID: "INI-001",
				Updates:      []*primary.Update{{ID: "U5"}, {ID: "U4"}, {ID: "U3"}},
				Total:        5,
				HasMore:      true,
			},
			want: "Showing 3 of 5 updates. Show all with: pulse timeline INI-001 --all",
		},
		{
			name:    "expanded",
			showAll: true,
			timeline: &primary.Timeline{
				InitiativeID: "INI-001",
				Updates:      []*primary.Update{{ID: "U2"}, {ID: "U1"}},
				Total:        2,
				Expanded:     true,
			},
			want:    "U1",
			notWant: "Showing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockUpdateService{
				timelineFn: func(ctx context.Context, req primary.TimelineRequest) (*primary.Timeline, error) {
					return tt.timeline, nil
				},
			}
			var out bytes.Buffer
			adapter := NewUpdateAdapter(service, &out)

			if err := adapter.Timeline(context.Background(), "INI-001", tt.showAll); err != nil {
				t.Fatalf("Timeline failed: %v", err)
			}
			if service.lastTimelineR.ShowAll != tt.showAll {
				t.Errorf("ShowAll not forwarded")
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out.String())
			}
			if tt.notWant != "" && strings.Contains(out.String(), tt.notWant) {
				t.Errorf("output should not contain %q:\n%s", tt.notWant, out.String())
			}
		})
	}
}
