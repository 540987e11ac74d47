package quality

import (
	"carelens/domain/core"
)

// Status is the standardized outcome of one check
type Status string

const (
	StatusPassed  Status = "passed"
	StatusWarning Status = "warning"
	StatusFailed  Status = "failed"
)

// rank orders statuses by severity: failed > warning > passed
func (s Status) rank() int {
	switch s {
	case StatusFailed:
		return 2
	case StatusWarning:
		return 1
	default:
		return 0
	}
}

// Worse returns the more severe of two statuses
func (s Status) Worse(other Status) Status {
	if other.rank() > s.rank() {
		return other
	}
	return s
}

// IssueType is the closed set of finding kinds
type IssueType string

const (
	IssueNullValues       IssueType = "null_values"
	IssueMissingColumn    IssueType = "missing_column"
	IssueTypeMismatch     IssueType = "type_mismatch"
	IssueUnexpectedColumn IssueType = "unexpected_column"
	IssueInvalidCategory  IssueType = "invalid_category"
	IssueOutOfRange       IssueType = "out_of_range"
	IssueZScoreAnomaly    IssueType = "zscore_anomaly"
	IssueCheckError       IssueType = "check_error"
	IssueEmptyDataset     IssueType = "empty_dataset"
)

// Issue is one discrete finding within a check result.
// Column and Count are optional; not every finding is column-scoped.
type Issue struct {
	Type    IssueType `json:"type"`
	Column  string    `json:"column,omitempty"`
	Count   int       `json:"count,omitempty"`
	Details string    `json:"details"`
}

// CheckResult is the standardized output of one check invocation
type CheckResult struct {
	CheckName string         `json:"check_name"`
	Table     string         `json:"table,omitempty"`
	Status    Status         `json:"status"`
	Issues    []Issue        `json:"issues"`
	Timestamp core.Timestamp `json:"timestamp"`
}

// NewCheckResult creates a result stamped at construction time
func NewCheckResult(checkName, table string) CheckResult {
	return CheckResult{
		CheckName: checkName,
		Table:     table,
		Status:    StatusPassed,
		Issues:    []Issue{},
		Timestamp: core.Now(),
	}
}

// AddIssue appends a finding and raises the result status if needed
func (r *CheckResult) AddIssue(issue Issue, severity Status) {
	r.Issues = append(r.Issues, issue)
	r.Status = r.Status.Worse(severity)
}

// Report aggregates the results of one runner invocation
type Report struct {
	ID            core.ReportID  `json:"id"`
	Dataset       string         `json:"dataset"`
	Results       []CheckResult  `json:"results"`
	OverallStatus Status         `json:"overall_status"`
	GeneratedAt   core.Timestamp `json:"generated_at"`
}

// NewReport builds a report from ordered check results.
// OverallStatus is the worst status among the results; an empty result set passes.
func NewReport(datasetName string, results []CheckResult) Report {
	overall := StatusPassed
	for _, res := range results {
		overall = overall.Worse(res.Status)
	}
	return Report{
		ID:            core.ReportID(core.NewID()),
		Dataset:       datasetName,
		Results:       results,
		OverallStatus: overall,
		GeneratedAt:   core.Now(),
	}
}
