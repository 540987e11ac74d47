package modelval

import (
	"math"

	"carelens/domain/core"
	"carelens/domain/modelval"
)

// MetricDelta is the change in one metric between two model versions.
// PercentDefined is false when the baseline metric is zero.
type MetricDelta struct {
	Absolute       float64 `json:"absolute_change"`
	Percent        float64 `json:"percentage_change"`
	PercentDefined bool    `json:"percentage_defined"`
}

// SignificantChange flags a metric whose relative movement crossed the
// reporting thresholds: >5% is medium, >10% is high.
type SignificantChange struct {
	Metric   string  `json:"metric"`
	Percent  float64 `json:"change"`
	Severity string  `json:"severity"`
}

// VersionComparison contrasts validation results between model versions
type VersionComparison struct {
	BaseVersion        string                 `json:"base_version"`
	CompareVersion     string                 `json:"compare_version"`
	Deltas             map[string]MetricDelta `json:"metric_deltas"`
	SignificantChanges []SignificantChange    `json:"significant_changes"`
	Timestamp          core.Timestamp         `json:"timestamp"`
}

// CompareVersions computes metric deltas of base relative to other.
// R2 is only compared when both reports define it.
func CompareVersions(base, other *modelval.ValidationReport) VersionComparison {
	comparison := VersionComparison{
		BaseVersion:    base.ModelVersion,
		CompareVersion: other.ModelVersion,
		Deltas:         make(map[string]MetricDelta),
		Timestamp:      core.Now(),
	}

	pairs := map[string][2]float64{
		"mse":  {base.Metrics.MSE, other.Metrics.MSE},
		"rmse": {base.Metrics.RMSE, other.Metrics.RMSE},
		"mae":  {base.Metrics.MAE, other.Metrics.MAE},
	}
	if base.Metrics.R2Defined && other.Metrics.R2Defined {
		pairs["r2"] = [2]float64{base.Metrics.R2, other.Metrics.R2}
	}

	for metric, values := range pairs {
		delta := MetricDelta{Absolute: values[0] - values[1]}
		if values[1] != 0 {
			delta.Percent = delta.Absolute / values[1] * 100
			delta.PercentDefined = true
		}
		comparison.Deltas[metric] = delta

		if !delta.PercentDefined || math.Abs(delta.Percent) <= 5 {
			continue
		}
		severity := "medium"
		if math.Abs(delta.Percent) > 10 {
			severity = "high"
		}
		comparison.SignificantChanges = append(comparison.SignificantChanges, SignificantChange{
			Metric:   metric,
			Percent:  delta.Percent,
			Severity: severity,
		})
	}

	return comparison
}
