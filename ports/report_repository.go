package ports

import (
	"context"
	"encoding/json"

	"carelens/domain/core"
	"carelens/domain/modelval"
	"carelens/domain/quality"
)

// ReportKind distinguishes the two report families in storage
type ReportKind string

const (
	ReportKindQuality    ReportKind = "quality"
	ReportKindValidation ReportKind = "model_validation"
)

// StoredReport is a persisted report document. The payload is opaque to the
// storage layer; it is the JSON the engine produced, untouched.
type StoredReport struct {
	ID        core.ReportID   `json:"id" db:"id"`
	Kind      ReportKind      `json:"kind" db:"kind"`
	Payload   json.RawMessage `json:"payload" db:"payload"`
	CreatedAt core.Timestamp  `json:"created_at" db:"created_at"`
}

// ReportRepository persists reports as opaque documents for downstream
// consumers. The engine works without one; persistence is a collaborator
// concern.
type ReportRepository interface {
	SaveQualityReport(ctx context.Context, report *quality.Report) error
	SaveValidationReport(ctx context.Context, report *modelval.ValidationReport) error
	GetReport(ctx context.Context, id core.ReportID) (*StoredReport, error)
	ListReports(ctx context.Context, kind ReportKind, limit int) ([]*StoredReport, error)
}
