package checks

import (
	"fmt"

	"carelens/domain/dataset"
	"carelens/domain/quality"
	"carelens/internal/thresholds"
)

// NullCheck reports missing cells per column against the configured null
// percentage ceiling.
type NullCheck struct{}

// NewNullCheck creates a null value check
func NewNullCheck() *NullCheck {
	return &NullCheck{}
}

// Name returns the check identifier
func (c *NullCheck) Name() string {
	return "null_check"
}

// Run computes null_pct = null_count / total_records * 100 for every column.
// A column over NullPctMax fails the check; any nonzero count below the
// ceiling is a warning.
func (c *NullCheck) Run(ds *dataset.Dataset, cfg *thresholds.Config) quality.CheckResult {
	if ds.IsEmpty() {
		return emptyDatasetResult(c.Name(), ds.Name)
	}

	result := quality.NewCheckResult(c.Name(), ds.Name)
	total := float64(ds.Len())

	for _, column := range ds.Columns() {
		nullCount, err := ds.NullCount(column)
		if err != nil || nullCount == 0 {
			continue
		}

		nullPct := float64(nullCount) / total * 100

		severity := quality.StatusWarning
		if nullPct > cfg.NullPctMax {
			severity = quality.StatusFailed
		}

		result.AddIssue(quality.Issue{
			Type:   quality.IssueNullValues,
			Column: column,
			Count:  nullCount,
			Details: fmt.Sprintf("column %s has %d null values (%.2f%%, limit %.2f%%)",
				column, nullCount, nullPct, cfg.NullPctMax),
		}, severity)
	}

	return result
}
