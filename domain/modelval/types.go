package modelval

import (
	"encoding/json"

	"carelens/domain/core"
)

// ComplianceStatus summarizes bias findings against the configured ceiling
type ComplianceStatus string

const (
	Compliant    ComplianceStatus = "compliant"
	NonCompliant ComplianceStatus = "non_compliant"
)

// Metrics holds regression accuracy metrics for one evaluation.
// R2Defined is false when the actual outcomes are constant (zero total variance);
// R2 carries no meaning in that case and must not be compared against thresholds.
type Metrics struct {
	MSE       float64 `json:"mse"`
	RMSE      float64 `json:"rmse"`
	MAE       float64 `json:"mae"`
	R2        float64 `json:"r2"`
	R2Defined bool    `json:"r2_defined"`
}

// MetricCheck records one metric compared against its configured threshold
type MetricCheck struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Passed    bool    `json:"passed"`
}

// GroupStats holds per-group prediction statistics for one protected attribute value
type GroupStats struct {
	Size              int     `json:"size"`
	MeanPrediction    float64 `json:"mean_prediction"`
	StdPrediction     float64 `json:"std_prediction"`
	OutcomeRate       float64 `json:"outcome_rate"`
	PredictionRate    float64 `json:"prediction_rate"` // alias of mean_prediction kept for downstream consumers
	FalsePositiveRate float64 `json:"false_positive_rate"`
	LowConfidence     bool    `json:"low_confidence"` // group smaller than the configured minimum
}

// DisparityMetric is the spread between the extreme per-group means.
// RatioDefined is false when the minimum group mean is zero; reporting an
// undefined ratio beats reporting infinity.
type DisparityMetric struct {
	Ratio        float64 `json:"ratio"`
	Difference   float64 `json:"difference"`
	RatioDefined bool    `json:"ratio_defined"`
	MaxGroup     string  `json:"max_group"`
	MinGroup     string  `json:"min_group"`
}

// AttributeBias is the full bias picture for one protected attribute
type AttributeBias struct {
	Attribute string                `json:"attribute"`
	Groups    map[string]GroupStats `json:"groups"`
	Disparity DisparityMetric       `json:"-"`
	Flagged   bool                  `json:"flagged"`
}

// attributeBiasJSON is the wire form: the disparity is keyed by the metric
// it was computed over, so consumers read
// disparity_metrics.mean_prediction.ratio.
type attributeBiasJSON struct {
	Attribute string                     `json:"attribute"`
	Groups    map[string]GroupStats      `json:"groups"`
	Disparity map[string]DisparityMetric `json:"disparity_metrics"`
	Flagged   bool                       `json:"flagged"`
}

func (b AttributeBias) MarshalJSON() ([]byte, error) {
	return json.Marshal(attributeBiasJSON{
		Attribute: b.Attribute,
		Groups:    b.Groups,
		Disparity: map[string]DisparityMetric{"mean_prediction": b.Disparity},
		Flagged:   b.Flagged,
	})
}

func (b *AttributeBias) UnmarshalJSON(data []byte) error {
	var wire attributeBiasJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	b.Attribute = wire.Attribute
	b.Groups = wire.Groups
	b.Disparity = wire.Disparity["mean_prediction"]
	b.Flagged = wire.Flagged
	return nil
}

// RuleResult is one healthcare rule outcome. Details always carries the
// compared numbers so results stay machine-checkable.
type RuleResult struct {
	Name    string             `json:"name"`
	Passed  bool               `json:"passed"`
	Details map[string]float64 `json:"details"`
}

// HealthcareValidation groups the domain rule outcomes
type HealthcareValidation struct {
	Rules  []RuleResult `json:"rules"`
	Passed bool         `json:"passed"`
}

// ValidationReport is the full model validation output handed to collaborators
type ValidationReport struct {
	ID                   core.ReportID            `json:"id"`
	ModelName            string                   `json:"model_name"`
	ModelVersion         string                   `json:"model_version"`
	Timestamp            core.Timestamp           `json:"timestamp"`
	Metrics              Metrics                  `json:"metrics"`
	MetricChecks         []MetricCheck            `json:"metric_checks"`
	HealthcareValidation *HealthcareValidation    `json:"healthcare_validation,omitempty"`
	BiasAnalysis         map[string]AttributeBias `json:"bias_analysis"`
	ComplianceStatus     ComplianceStatus         `json:"compliance_status"`
}

// PerformancePassed reports whether every metric threshold held
func (r *ValidationReport) PerformancePassed() bool {
	for _, check := range r.MetricChecks {
		if !check.Passed {
			return false
		}
	}
	return true
}
