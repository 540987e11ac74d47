package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"carelens/domain/core"
	"carelens/domain/modelval"
	"carelens/domain/quality"
	"carelens/ports"
)

// reportRepository implements the ReportRepository interface. Reports are
// stored as opaque JSONB documents; the storage layer never decomposes them.
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &reportRepository{db: db}
}

// EnsureSchema creates the reports table if it does not exist
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS reports (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL,
		payload    JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS reports_kind_created_idx ON reports (kind, created_at DESC);`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure reports schema: %w", err)
	}
	return nil
}

// SaveQualityReport persists a data quality report document
func (r *reportRepository) SaveQualityReport(ctx context.Context, report *quality.Report) error {
	return r.save(ctx, core.ReportID(report.ID), ports.ReportKindQuality, report)
}

// SaveValidationReport persists a model validation report document
func (r *reportRepository) SaveValidationReport(ctx context.Context, report *modelval.ValidationReport) error {
	return r.save(ctx, report.ID, ports.ReportKindValidation, report)
}

func (r *reportRepository) save(ctx context.Context, id core.ReportID, kind ports.ReportKind, report interface{}) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `INSERT INTO reports (id, kind, payload) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, id.String(), kind, payload); err != nil {
		return fmt.Errorf("failed to save %s report: %w", kind, err)
	}
	return nil
}

// GetReport retrieves a stored report document by ID
func (r *reportRepository) GetReport(ctx context.Context, id core.ReportID) (*ports.StoredReport, error) {
	query := `SELECT id, kind, payload, created_at FROM reports WHERE id = $1`

	var stored ports.StoredReport
	err := r.db.GetContext(ctx, &stored, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", core.ErrReportNotFound, id)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &stored, nil
}

// ListReports returns the most recent reports of one kind
func (r *reportRepository) ListReports(ctx context.Context, kind ports.ReportKind, limit int) ([]*ports.StoredReport, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, kind, payload, created_at FROM reports WHERE kind = $1 ORDER BY created_at DESC LIMIT $2`

	var stored []*ports.StoredReport
	if err := r.db.SelectContext(ctx, &stored, query, kind, limit); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return stored, nil
}
