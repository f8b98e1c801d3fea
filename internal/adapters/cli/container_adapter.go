package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/example/pulse/internal/core/workday"
	"github.com/example/pulse/internal/ports/primary"
)

// ContainerAdapter manages the task list of the miscellaneous container.
type ContainerAdapter struct {
	initiatives primary.InitiativeService
	updates     primary.UpdateService
	out         io.Writer
	now         func() time.Time
}

// NewContainerAdapter creates a new ContainerAdapter with the given services.
func NewContainerAdapter(initiatives primary.InitiativeService, updates primary.UpdateService, out io.Writer) *ContainerAdapter {
	return &ContainerAdapter{
		initiatives: initiatives,
		updates:     updates,
		out:         out,
		now:         time.Now,
	}
}

// Show prints the container's tasks, or the editable YAML task list when asYAML is set.
func (a *ContainerAdapter) Show(ctx context.Context, asYAML bool) error {
	container, err := a.initiatives.GetContainer(ctx)
	if err != nil {
		return err
	}

	if asYAML {
		doc := TasksDocument{Tasks: []TaskDocument{}}
		for _, task := range container.Tasks {
			doc.Tasks = append(doc.Tasks, TaskDocument{Text: task.Text, Done: task.Completed, Due: task.DueDate})
		}
		data, err := EncodeYAML(doc)
		if err != nil {
			return err
		}
		_, err = a.out.Write(data)
		return err
	}

	fmt.Fprintf(a.out, "\n%s %s\n", heading.Sprint(container.Initiative.Name), muted.Sprint(container.Initiative.ID))
	fmt.Fprintln(a.out, rule)
	if len(container.Tasks) == 0 {
		fmt.Fprintln(a.out, "  No tasks yet. Add some with: pulse other save --tasks-file FILE")
		fmt.Fprintln(a.out)
		return nil
	}
	writeTasks(a.out, "  ", container.Tasks, a.dueText)
	fmt.Fprintln(a.out)
	return nil
}

// Save replaces the container's task list.
func (a *ContainerAdapter) Save(ctx context.Context, tasks []primary.TaskInput) error {
	container, err := a.initiatives.GetContainer(ctx)
	if err != nil {
		return err
	}

	saved, err := a.updates.SaveTasksInPlace(ctx, primary.SaveTasksRequest{
		UpdateID: container.UpdateID,
		Tasks:    tasks,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Saved %d tasks to %s\n", len(saved), container.Initiative.Name)
	writeTasks(a.out, "  ", saved, a.dueText)
	return nil
}

func (a *ContainerAdapter) dueText(task *primary.Task) string {
	if task.Completed {
		return ""
	}
	text, err := workday.FormatUntil(a.now(), task.DueDate)
	if err != nil {
		return ""
	}
	return text
}
