package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/pulse/internal/ports/primary"
)

// DashboardAdapter renders the initiative overview.
type DashboardAdapter struct {
	service primary.DashboardService
	out     io.Writer
}

// NewDashboardAdapter creates a new DashboardAdapter with the given service.
func NewDashboardAdapter(service primary.DashboardService, out io.Writer) *DashboardAdapter {
	return &DashboardAdapter{
		service: service,
		out:     out,
	}
}

// Show prints one card per initiative in dashboard order.
func (a *DashboardAdapter) Show(ctx context.Context) error {
	dash, err := a.service.GetDashboard(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	if len(dash.Cards) == 0 {
		fmt.Fprintln(a.out, "No initiatives found. Create one with: pulse initiative create NAME")
		return nil
	}

	fmt.Fprintln(a.out)
	for _, card := range dash.Cards {
		a.writeCard(card, dash)
		fmt.Fprintln(a.out)
	}
	return nil
}

func (a *DashboardAdapter) writeCard(card *primary.InitiativeCard, dash *primary.Dashboard) {
	ini := card.Initiative
	fmt.Fprintf(a.out, "%s %s\n", heading.Sprint(ini.Name), muted.Sprint(ini.ID))
	fmt.Fprintln(a.out, rule)

	if ini.IsContainer() {
		fmt.Fprintf(a.out, "  Open tasks: %d\n", len(card.OpenTasks))
		a.writeDeadline(card)
		writeTasks(a.out, "  ", card.OpenTasks, nil)
		return
	}

	if card.Latest == nil {
		fmt.Fprintf(a.out, "  No updates yet. Add one with: pulse update submit %s\n", ini.ID)
		return
	}

	writeAssessment(a.out, "  ", card.Latest.Assessment)
	fmt.Fprintf(a.out, "  %s\n", muted.Sprint(updatedAgo(card.Latest.CreatedAt, dash.Today)))
	a.writeDeadline(card)
	if n := len(card.OpenTasks); n > 0 {
		fmt.Fprintf(a.out, "  Open tasks: %d\n", n)
	}
}

func (a *DashboardAdapter) writeDeadline(card *primary.InitiativeCard) {
	if card.NearestDeadline == "" {
		return
	}
	fmt.Fprintf(a.out, "  Next deadline: %s %s\n", card.NearestDeadline, deadlineText(card.DeadlineText))
}
