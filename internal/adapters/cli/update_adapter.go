package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/example/pulse/internal/ports/primary"
)

// SubmitOptions describes how a new update differs from its draft.
// Zero values keep what the draft carries.
type SubmitOptions struct {
	Document  *UpdateDocument // replaces the draft when set
	Plan      string
	Alignment string
	Execution string
	Outcomes  string
	Mood      string
	Status    *string
	Risk      *string
	Aligned   []string            // replaces the aligned departments when non-nil
	Tasks     []primary.TaskInput // replaces the task list when non-nil
	AddTasks  []string
	Due       map[int]string // 1-based task number -> YYYY-MM-DD
	Done      []int          // 1-based task numbers
}

// UpdateAdapter is a thin adapter that translates CLI operations to UpdateService calls.
type UpdateAdapter struct {
	service primary.UpdateService
	out     io.Writer
}

// NewUpdateAdapter creates a new UpdateAdapter with the given service.
func NewUpdateAdapter(service primary.UpdateService, out io.Writer) *UpdateAdapter {
	return &UpdateAdapter{
		service: service,
		out:     out,
	}
}

// Draft prints the pre-populated form for the next update as YAML.
func (a *UpdateAdapter) Draft(ctx context.Context, initiativeID string) error {
	draft, err := a.service.DraftUpdate(ctx, initiativeID)
	if err != nil {
		return err
	}

	data, err := EncodeYAML(DraftDocument(draft))
	if err != nil {
		return err
	}

	if draft.BasedOn != "" {
		fmt.Fprintf(a.out, "# Draft for %s, copied from update %s\n", draft.InitiativeID, draft.BasedOn)
	} else {
		fmt.Fprintf(a.out, "# Draft for %s (first update)\n", draft.InitiativeID)
	}
	fmt.Fprintf(a.out, "# Edit and submit with: pulse update submit %s --file FILE\n", draft.InitiativeID)
	_, err = a.out.Write(data)
	return err
}

// Submit saves a new update built from the draft and the given options.
func (a *UpdateAdapter) Submit(ctx context.Context, initiativeID string, opts SubmitOptions) error {
	draft, err := a.service.DraftUpdate(ctx, initiativeID)
	if err != nil {
		return err
	}

	assessment, tasks, err := applySubmitOptions(draft, opts)
	if err != nil {
		return err
	}

	saved, err := a.service.SaveUpdate(ctx, primary.SaveUpdateRequest{
		InitiativeID: initiativeID,
		Assessment:   assessment,
		Tasks:        tasks,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Saved update %s for initiative %s (%d tasks)\n", saved.ID, saved.InitiativeID, len(saved.Tasks))
	return nil
}

// Latest prints an initiative's most recent update.
func (a *UpdateAdapter) Latest(ctx context.Context, initiativeID string) error {
	latest, err := a.service.GetLatestUpdate(ctx, initiativeID)
	if err != nil {
		return err
	}
	if latest == nil {
		fmt.Fprintf(a.out, "No updates yet for initiative %s\n", initiativeID)
		return nil
	}

	fmt.Fprintln(a.out)
	a.writeUpdate(latest)
	return nil
}

// Timeline prints an initiative's update history, newest first.
func (a *UpdateAdapter) Timeline(ctx context.Context, initiativeID string, showAll bool) error {
	tl, err := a.service.GetTimeline(ctx, primary.TimelineRequest{InitiativeID: initiativeID, ShowAll: showAll})
	if err != nil {
		return err
	}
	if tl.Total == 0 {
		fmt.Fprintf(a.out, "No updates yet for initiative %s\n", initiativeID)
		return nil
	}

	fmt.Fprintln(a.out)
	for _, u := range tl.Updates {
		a.writeUpdate(u)
		fmt.Fprintln(a.out)
	}
	if tl.HasMore {
		fmt.Fprintf(a.out, "Showing %d of %d updates. Show all with: pulse timeline %s --all\n",
			len(tl.Updates), tl.Total, initiativeID)
	}
	return nil
}

func (a *UpdateAdapter) writeUpdate(u *primary.Update) {
	fmt.Fprintf(a.out, "%s %s\n", heading.Sprint(u.CreatedAt.Local().Format("2006-01-02 15:04")), muted.Sprint(u.ID))
	fmt.Fprintln(a.out, rule)
	writeAssessment(a.out, "  ", u.Assessment)
	if len(u.Tasks) > 0 {
		fmt.Fprintln(a.out, "  Tasks:")
		writeTasks(a.out, "    ", u.Tasks, nil)
	}
}

func applySubmitOptions(draft *primary.UpdateDraft, opts SubmitOptions) (primary.Assessment, []primary.TaskInput, error) {
	assessment := draft.Assessment
	tasks := slices.Clone(draft.Tasks)
	if opts.Document != nil {
		assessment = opts.Document.Assessment()
		tasks = opts.Document.TaskInputs()
	}

	for _, o := range []struct {
		value  string
		target *string
	}{
		{opts.Plan, &assessment.Plan},
		{opts.Alignment, &assessment.Alignment},
		{opts.Execution, &assessment.Execution},
		{opts.Outcomes, &assessment.Outcomes},
		{opts.Mood, &assessment.Mood},
	} {
		if o.value != "" {
			*o.target = o.value
		}
	}
	if opts.Status != nil {
		assessment.LatestStatus = *opts.Status
	}
	if opts.Risk != nil {
		assessment.BiggestRisk = *opts.Risk
	}
	if opts.Aligned != nil {
		if err := ValidateDepartments(opts.Aligned); err != nil {
			return assessment, nil, err
		}
		setAligned(&assessment, opts.Aligned)
	}

	if opts.Tasks != nil {
		tasks = slices.Clone(opts.Tasks)
	}
	for _, text := range opts.AddTasks {
		tasks = append(tasks, primary.TaskInput{Text: text})
	}
	for _, n := range slices.Sorted(maps.Keys(opts.Due)) {
		if err := checkTaskNumber(n, len(tasks)); err != nil {
			return assessment, nil, err
		}
		tasks[n-1].DueDate = opts.Due[n]
	}
	for _, n := range opts.Done {
		if err := checkTaskNumber(n, len(tasks)); err != nil {
			return assessment, nil, err
		}
		tasks[n-1].Completed = true
	}

	return assessment, tasks, nil
}

func checkTaskNumber(n, count int) error {
	if n < 1 || n > count {
		return fmt.Errorf("task %d does not exist (the update has %d tasks)", n, count)
	}
	return nil
}
