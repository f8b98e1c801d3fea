package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/pulse/internal/ports/secondary"
)

// InitiativeRepository implements secondary.InitiativeRepository with SQLite.
type InitiativeRepository struct {
	db *sql.DB
}

// NewInitiativeRepository creates a new SQLite initiative repository.
func NewInitiativeRepository(db *sql.DB) *InitiativeRepository {
	return &InitiativeRepository{db: db}
}

// scanInitiative scans an initiative row into an InitiativeRecord.
func scanInitiative(scanner interface {
	Scan(dest ...any) error
}) (*secondary.InitiativeRecord, error) {
	record := &secondary.InitiativeRecord{}
	err := scanner.Scan(&record.ID, &record.OwnerID, &record.Name, &record.Kind, &record.CreatedAt)
	if err != nil {
		return nil, err
	}
	return record, nil
}

const initiativeSelectCols = "id, owner_id, name, kind, created_at"

// Create persists a new initiative.
func (r *InitiativeRepository) Create(ctx context.Context, initiative *secondary.InitiativeRecord) error {
	kind := initiative.Kind
	if kind == "" {
		kind = "standard"
	}
	initiative.Kind = kind
	initiative.CreatedAt = timestamp(initiative.CreatedAt)

	_, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO initiatives (id, owner_id, name, kind, created_at) VALUES (?, ?, ?, ?, ?)",
		initiative.ID, initiative.OwnerID, initiative.Name, kind, initiative.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create initiative: %w", err)
	}

	return nil
}

// GetByID retrieves an initiative by its ID.
func (r *InitiativeRepository) GetByID(ctx context.Context, id string) (*secondary.InitiativeRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+initiativeSelectCols+" FROM initiatives WHERE id = ?",
		id,
	)

	record, err := scanInitiative(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("initiative %s %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get initiative: %w", err)
	}

	return record, nil
}

// GetByName retrieves an owner's initiative by name.
func (r *InitiativeRepository) GetByName(ctx context.Context, ownerID, name string) (*secondary.InitiativeRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+initiativeSelectCols+" FROM initiatives WHERE owner_id = ? AND name = ?",
		ownerID, name,
	)

	record, err := scanInitiative(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("initiative %q %w", name, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get initiative: %w", err)
	}

	return record, nil
}

// List retrieves initiatives matching the given filters, ordered by name.
func (r *InitiativeRepository) List(ctx context.Context, filters secondary.InitiativeFilters) ([]*secondary.InitiativeRecord, error) {
	query := "SELECT " + initiativeSelectCols + " FROM initiatives WHERE 1=1"
	args := []any{}

	if filters.OwnerID != "" {
		query += " AND owner_id = ?"
		args = append(args, filters.OwnerID)
	}

	if filters.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filters.Kind)
	}

	query += " ORDER BY name ASC"

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list initiatives: %w", err)
	}
	defer rows.Close()

	var initiatives []*secondary.InitiativeRecord
	for rows.Next() {
		record, err := scanInitiative(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan initiative: %w", err)
		}
		initiatives = append(initiatives, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list initiatives: %w", err)
	}

	return initiatives, nil
}

// Delete removes an initiative. Updates and tasks go with it via ON DELETE CASCADE.
func (r *InitiativeRepository) Delete(ctx context.Context, id string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM initiatives WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete initiative: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("initiative %s %w", id, secondary.ErrNotFound)
	}

	return nil
}

// Ensure InitiativeRepository implements the interface
var _ secondary.InitiativeRepository = (*InitiativeRepository)(nil)
