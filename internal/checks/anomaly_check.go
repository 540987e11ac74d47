package checks

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"carelens/domain/core"
	"carelens/domain/dataset"
	"carelens/domain/quality"
	"carelens/internal/thresholds"
)

// AnomalyCheck finds statistical outliers (z-score exceedances) and hard
// bound violations in numeric columns. The two are reported independently:
// a domain-valid value can still be a statistical outlier and vice versa.
type AnomalyCheck struct{}

// NewAnomalyCheck creates an anomaly check
func NewAnomalyCheck() *AnomalyCheck {
	return &AnomalyCheck{}
}

// Name returns the check identifier
func (c *AnomalyCheck) Name() string {
	return "anomaly_check"
}

// Run scores every numeric column. Soft z-score anomalies warn; any hard
// bound violation fails. A constant column (std == 0) has no z-scores and
// reports zero anomalies rather than dividing by zero.
func (c *AnomalyCheck) Run(ds *dataset.Dataset, cfg *thresholds.Config) quality.CheckResult {
	if ds.IsEmpty() {
		return emptyDatasetResult(c.Name(), ds.Name)
	}

	result := quality.NewCheckResult(c.Name(), ds.Name)

	for _, column := range ds.Columns() {
		values, err := ds.NumericColumn(column)
		if err != nil {
			if errors.Is(err, core.ErrNonNumeric) {
				continue // string column, nothing to score
			}
			continue
		}
		if len(values) == 0 {
			continue
		}

		c.scoreZScores(&result, column, values, cfg)
		c.checkHardBounds(&result, column, values, cfg)
	}

	return result
}

func (c *AnomalyCheck) scoreZScores(result *quality.CheckResult, column string, values []float64, cfg *thresholds.Config) {
	mean, _ := stats.Mean(values)
	std, _ := stats.StandardDeviationPopulation(values)
	if std == 0 {
		return // constant column: zero anomalies regardless of threshold
	}

	anomalies := 0
	for _, v := range values {
		if math.Abs((v-mean)/std) > cfg.ZScoreMax {
			anomalies++
		}
	}
	if anomalies == 0 {
		return
	}

	result.AddIssue(quality.Issue{
		Type:   quality.IssueZScoreAnomaly,
		Column: column,
		Count:  anomalies,
		Details: fmt.Sprintf("column %s has %d values with |z| > %.1f (mean=%.2f, std=%.2f)",
			column, anomalies, cfg.ZScoreMax, mean, std),
	}, quality.StatusWarning)
}

func (c *AnomalyCheck) checkHardBounds(result *quality.CheckResult, column string, values []float64, cfg *thresholds.Config) {
	bound, ok := cfg.HardBounds[column]
	if !ok {
		return
	}

	violations := 0
	for _, v := range values {
		if !bound.Contains(v) {
			violations++
		}
	}
	if violations == 0 {
		return
	}

	result.AddIssue(quality.Issue{
		Type:   quality.IssueOutOfRange,
		Column: column,
		Count:  violations,
		Details: fmt.Sprintf("column %s has %d values outside [%g, %g]",
			column, violations, bound.Min, bound.Max),
	}, quality.StatusFailed)
}
