package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/pulse/internal/ports/secondary"
)

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// scanTask scans a task row into a TaskRecord.
func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TaskRecord, error) {
	var dueDate sql.NullString

	record := &secondary.TaskRecord{}
	err := scanner.Scan(
		&record.ID, &record.UpdateID, &record.Text, &record.IsCompleted, &record.DisplayOrder, &dueDate,
	)
	if err != nil {
		return nil, err
	}

	record.DueDate = dueDate.String
	return record, nil
}

const taskSelectCols = "id, update_id, task_text, is_completed, display_order, due_date"

// CreateBatch persists tasks in the given order, all or nothing.
func (r *TaskRepository) CreateBatch(ctx context.Context, tasks []*secondary.TaskRecord) error {
	if len(tasks) == 0 {
		return nil
	}

	return withinTx(ctx, r.db, func(ctx context.Context) error {
		q := conn(ctx, r.db)
		for _, task := range tasks {
			_, err := q.ExecContext(ctx,
				"INSERT INTO tasks (id, update_id, task_text, is_completed, display_order, due_date) VALUES (?, ?, ?, ?, ?, ?)",
				task.ID, task.UpdateID, task.Text, task.IsCompleted, task.DisplayOrder, nullString(task.DueDate),
			)
			if err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}
		}
		return nil
	})
}

// List retrieves tasks matching the given filters.
func (r *TaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	query := "SELECT " + taskSelectCols + " FROM tasks WHERE 1=1"
	args := []any{}

	if filters.UpdateID != "" {
		query += " AND update_id = ?"
		args = append(args, filters.UpdateID)
	}

	if filters.OpenOnly {
		query += " AND is_completed = 0"
	}

	if filters.WithDueDate {
		query += " AND due_date IS NOT NULL"
	}

	switch filters.Order {
	case secondary.TaskOrderDueDate:
		query += " ORDER BY due_date IS NULL, due_date ASC, display_order ASC"
	default:
		query += " ORDER BY display_order ASC, rowid ASC"
	}

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*secondary.TaskRecord
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// DeleteByUpdate removes every task of an update.
func (r *TaskRepository) DeleteByUpdate(ctx context.Context, updateID string) (int, error) {
	result, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM tasks WHERE update_id = ?", updateID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tasks: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return int(rowsAffected), nil
}

// Ensure TaskRepository implements the interface
var _ secondary.TaskRepository = (*TaskRepository)(nil)
