package update

import "strings"

// PlannedTask is a task row ready to be inserted under an update.
type PlannedTask struct {
	Text         string
	Completed    bool
	DisplayOrder int
	DueDate      string // empty means no due date
}

// PlanSnapshotTasks plans the task rows of a new versioned update.
// Every edited task is kept in edit order; display order is its position.
func PlanSnapshotTasks(tasks []TaskInput) []PlannedTask {
	planned := make([]PlannedTask, len(tasks))
	for i, t := range tasks {
		planned[i] = PlannedTask{
			Text:         t.Text,
			Completed:    t.Completed,
			DisplayOrder: i,
			DueDate:      t.DueDate,
		}
	}
	return planned
}

// PlanInPlaceTasks plans the replacement task rows of the miscellaneous
// container. Tasks with blank text are dropped and the remainder renumbered.
func PlanInPlaceTasks(tasks []TaskInput) []PlannedTask {
	planned := make([]PlannedTask, 0, len(tasks))
	for _, t := range tasks {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		planned = append(planned, PlannedTask{
			Text:         t.Text,
			Completed:    t.Completed,
			DisplayOrder: len(planned),
			DueDate:      strings.TrimSpace(t.DueDate),
		})
	}
	return planned
}
