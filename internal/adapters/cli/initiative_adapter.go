package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/pulse/internal/ports/primary"
)

// InitiativeAdapter is a thin adapter that translates CLI operations to InitiativeService calls.
type InitiativeAdapter struct {
	service primary.InitiativeService
	out     io.Writer
}

// NewInitiativeAdapter creates a new InitiativeAdapter with the given service.
func NewInitiativeAdapter(service primary.InitiativeService, out io.Writer) *InitiativeAdapter {
	return &InitiativeAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a new initiative.
func (a *InitiativeAdapter) Create(ctx context.Context, name string) error {
	resp, err := a.service.CreateInitiative(ctx, primary.CreateInitiativeRequest{Name: name})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created initiative %s: %s\n", resp.InitiativeID, resp.Initiative.Name)
	if resp.Initiative.IsContainer() {
		fmt.Fprintln(a.out, "  This is the miscellaneous container. Manage its tasks with: pulse other")
	}
	return nil
}

// List lists the current user's initiatives.
func (a *InitiativeAdapter) List(ctx context.Context) error {
	initiatives, err := a.service.ListInitiatives(ctx)
	if err != nil {
		return fmt.Errorf("failed to list initiatives: %w", err)
	}

	if len(initiatives) == 0 {
		fmt.Fprintln(a.out, "No initiatives found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-38s %-14s %s\n", "ID", "KIND", "NAME")
	fmt.Fprintln(a.out, rule)
	for _, ini := range initiatives {
		fmt.Fprintf(a.out, "%-38s %-14s %s\n", ini.ID, ini.Kind, ini.Name)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single initiative.
func (a *InitiativeAdapter) Show(ctx context.Context, initiativeID string) (*primary.Initiative, error) {
	ini, err := a.service.GetInitiative(ctx, initiativeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get initiative: %w", err)
	}

	fmt.Fprintf(a.out, "\nInitiative: %s\n", ini.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", ini.Name)
	fmt.Fprintf(a.out, "Kind:    %s\n", ini.Kind)
	fmt.Fprintf(a.out, "Created: %s\n", ini.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintln(a.out)

	return ini, nil
}

// Delete deletes an initiative and its update history.
func (a *InitiativeAdapter) Delete(ctx context.Context, initiativeID string) error {
	ini, err := a.service.GetInitiative(ctx, initiativeID)
	if err != nil {
		return fmt.Errorf("failed to get initiative: %w", err)
	}

	if err := a.service.DeleteInitiative(ctx, initiativeID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Deleted initiative %s: %s\n", ini.ID, ini.Name)
	return nil
}

// Seed creates the named initiatives that do not exist yet.
func (a *InitiativeAdapter) Seed(ctx context.Context, names []string) error {
	result, err := a.service.SeedInitiatives(ctx, names)
	if err != nil {
		return err
	}

	for _, ini := range result.Created {
		fmt.Fprintf(a.out, "✓ Created initiative %s: %s\n", ini.ID, ini.Name)
	}
	for _, name := range result.Skipped {
		fmt.Fprintf(a.out, "  Skipped %q (already exists)\n", name)
	}
	fmt.Fprintf(a.out, "%d created, %d skipped\n", len(result.Created), len(result.Skipped))
	return nil
}
