package checks

import (
	"carelens/domain/dataset"
	"carelens/domain/quality"
	"carelens/internal/thresholds"
)

// Check is a pure function from (dataset, config) to a standardized result.
// Implementations must not mutate the dataset or keep state between runs,
// so the runner can execute them concurrently.
type Check interface {
	// Name returns the stable check identifier used in reports
	Name() string

	// Run executes the check. An empty dataset is a valid input and yields
	// a passed result with an explanatory note, never an error.
	Run(ds *dataset.Dataset, cfg *thresholds.Config) quality.CheckResult
}

// emptyDatasetResult is the shared passed-with-note outcome for empty input
func emptyDatasetResult(checkName, table string) quality.CheckResult {
	result := quality.NewCheckResult(checkName, table)
	result.AddIssue(quality.Issue{
		Type:    quality.IssueEmptyDataset,
		Details: "dataset contains no records; nothing to check",
	}, quality.StatusPassed)
	return result
}
