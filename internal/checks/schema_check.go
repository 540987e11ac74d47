package checks

import (
	"fmt"

	"carelens/domain/dataset"
	"carelens/domain/quality"
	"carelens/internal/thresholds"
)

// SchemaCheck validates the dataset's column set and cell types against an
// expected schema. Categorical columns are matched case-insensitively
// against their allowed value sets.
type SchemaCheck struct {
	schema *dataset.Schema
}

// NewSchemaCheck creates a schema check for the given expected schema
func NewSchemaCheck(schema *dataset.Schema) *SchemaCheck {
	return &SchemaCheck{schema: schema}
}

// Name returns the check identifier
func (c *SchemaCheck) Name() string {
	return "schema_check"
}

// Run compares the dataset against the expected schema. Missing required
// columns and type mismatches fail the check; undeclared extra columns and
// missing optional columns only warn.
func (c *SchemaCheck) Run(ds *dataset.Dataset, cfg *thresholds.Config) quality.CheckResult {
	if ds.IsEmpty() {
		return emptyDatasetResult(c.Name(), ds.Name)
	}

	result := quality.NewCheckResult(c.Name(), ds.Name)

	// Declared columns that the dataset is missing. Exactly one issue per column.
	for _, spec := range c.schema.Columns {
		if ds.HasColumn(spec.Name) {
			continue
		}
		severity := quality.StatusWarning
		if spec.Required {
			severity = quality.StatusFailed
		}
		result.AddIssue(quality.Issue{
			Type:    quality.IssueMissingColumn,
			Column:  spec.Name,
			Details: fmt.Sprintf("expected column %s is missing from the dataset", spec.Name),
		}, severity)
	}

	// Dataset columns the schema never declared
	for _, column := range ds.Columns() {
		if c.schema.Declares(column) {
			continue
		}
		result.AddIssue(quality.Issue{
			Type:    quality.IssueUnexpectedColumn,
			Column:  column,
			Details: fmt.Sprintf("column %s is not declared in the expected schema", column),
		}, quality.StatusWarning)
	}

	// Per-cell type and categorical validation for declared, present columns
	for _, spec := range c.schema.Columns {
		if !ds.HasColumn(spec.Name) {
			continue
		}
		values, err := ds.Column(spec.Name)
		if err != nil {
			continue
		}

		mismatches := 0
		invalidCategories := 0
		var firstBad string

		for _, v := range values {
			if !spec.Accepts(v) {
				mismatches++
				if firstBad == "" {
					firstBad = v.Display()
				}
				continue
			}
			if text, ok := v.Text(); ok && !spec.Allows(text) {
				invalidCategories++
				if firstBad == "" {
					firstBad = text
				}
			}
		}

		if mismatches > 0 {
			result.AddIssue(quality.Issue{
				Type:   quality.IssueTypeMismatch,
				Column: spec.Name,
				Count:  mismatches,
				Details: fmt.Sprintf("column %s has %d values not coercible to %s (first: %s)",
					spec.Name, mismatches, spec.Type, firstBad),
			}, quality.StatusFailed)
		}
		if invalidCategories > 0 {
			result.AddIssue(quality.Issue{
				Type:   quality.IssueInvalidCategory,
				Column: spec.Name,
				Count:  invalidCategories,
				Details: fmt.Sprintf("column %s has %d values outside the allowed set %v",
					spec.Name, invalidCategories, spec.AllowedValues),
			}, quality.StatusFailed)
		}
	}

	return result
}
