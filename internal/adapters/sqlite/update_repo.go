package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/pulse/internal/ports/secondary"
)

// UpdateRepository implements secondary.UpdateRepository with SQLite.
type UpdateRepository struct {
	db *sql.DB
}

// NewUpdateRepository creates a new SQLite update repository.
func NewUpdateRepository(db *sql.DB) *UpdateRepository {
	return &UpdateRepository{db: db}
}

// scanUpdate scans an update row into an UpdateRecord.
func scanUpdate(scanner interface {
	Scan(dest ...any) error
}) (*secondary.UpdateRecord, error) {
	var (
		plan, alignment, execution, outcomes sql.NullString
		mood, status, risk                   sql.NullString
	)

	record := &secondary.UpdateRecord{}
	err := scanner.Scan(
		&record.ID, &record.InitiativeID, &record.CreatedAt,
		&plan, &alignment, &execution, &outcomes, &mood, &status, &risk,
		&record.ProductAligned, &record.TechAligned, &record.MarketingAligned,
		&record.ClientSuccessAligned, &record.CommercialAligned,
	)
	if err != nil {
		return nil, err
	}

	record.ConfidencePlan = plan.String
	record.ConfidenceAlignment = alignment.String
	record.ConfidenceExecution = execution.String
	record.ConfidenceOutcomes = outcomes.String
	record.StatusMood = mood.String
	record.LatestStatus = status.String
	record.BiggestRiskWorry = risk.String

	return record, nil
}

const updateSelectCols = `id, initiative_id, created_at,
	confidence_plan, confidence_alignment, confidence_execution, confidence_outcomes,
	status_mood, latest_status, biggest_risk_worry,
	dept_product_aligned, dept_tech_aligned, dept_marketing_aligned,
	dept_client_success_aligned, dept_commercial_aligned`

// Rows created within the same timestamp fall back to insertion order.
const updateNewestFirst = " ORDER BY created_at DESC, rowid DESC"

// Create persists a new update.
func (r *UpdateRepository) Create(ctx context.Context, update *secondary.UpdateRecord) error {
	update.CreatedAt = timestamp(update.CreatedAt)

	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO updates (id, initiative_id, created_at,
			confidence_plan, confidence_alignment, confidence_execution, confidence_outcomes,
			status_mood, latest_status, biggest_risk_worry,
			dept_product_aligned, dept_tech_aligned, dept_marketing_aligned,
			dept_client_success_aligned, dept_commercial_aligned)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		update.ID, update.InitiativeID, update.CreatedAt,
		nullString(update.ConfidencePlan), nullString(update.ConfidenceAlignment),
		nullString(update.ConfidenceExecution), nullString(update.ConfidenceOutcomes),
		nullString(update.StatusMood), nullString(update.LatestStatus), nullString(update.BiggestRiskWorry),
		update.ProductAligned, update.TechAligned, update.MarketingAligned,
		update.ClientSuccessAligned, update.CommercialAligned,
	)
	if err != nil {
		return fmt.Errorf("failed to create update: %w", err)
	}

	return nil
}

// GetByID retrieves an update by its ID.
func (r *UpdateRepository) GetByID(ctx context.Context, id string) (*secondary.UpdateRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+updateSelectCols+" FROM updates WHERE id = ?",
		id,
	)

	record, err := scanUpdate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update %s %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get update: %w", err)
	}

	return record, nil
}

// GetLatest retrieves the most recent update of an initiative, or nil if it has none.
func (r *UpdateRepository) GetLatest(ctx context.Context, initiativeID string) (*secondary.UpdateRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+updateSelectCols+" FROM updates WHERE initiative_id = ?"+updateNewestFirst+" LIMIT 1",
		initiativeID,
	)

	record, err := scanUpdate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest update: %w", err)
	}

	return record, nil
}

// List retrieves updates of an initiative, newest first.
func (r *UpdateRepository) List(ctx context.Context, filters secondary.UpdateFilters) ([]*secondary.UpdateRecord, error) {
	query := "SELECT " + updateSelectCols + " FROM updates WHERE 1=1"
	args := []any{}

	if filters.InitiativeID != "" {
		query += " AND initiative_id = ?"
		args = append(args, filters.InitiativeID)
	}

	query += updateNewestFirst

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list updates: %w", err)
	}
	defer rows.Close()

	var updates []*secondary.UpdateRecord
	for rows.Next() {
		record, err := scanUpdate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan update: %w", err)
		}
		updates = append(updates, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list updates: %w", err)
	}

	return updates, nil
}

// Ensure UpdateRepository implements the interface
var _ secondary.UpdateRepository = (*UpdateRepository)(nil)
