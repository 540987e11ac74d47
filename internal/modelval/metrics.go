package modelval

import (
	"math"

	"github.com/montanaflynn/stats"

	"carelens/domain/core"
	"carelens/domain/modelval"
	"carelens/internal"
	"carelens/internal/thresholds"
)

// Evaluator computes regression accuracy metrics from predictions against
// ground truth and scores them against configured thresholds.
type Evaluator struct {
	logger *internal.Logger
}

// NewEvaluator creates a metrics evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{logger: internal.DefaultLogger.WithComponent("Evaluator")}
}

// Evaluate computes MSE, RMSE, MAE and R2. The sequences must be parallel
// and equal length; a mismatch is fatal for the evaluation since no
// meaningful partial result exists. Constant actuals leave R2 undefined.
func (e *Evaluator) Evaluate(predictions, actuals []float64, cfg *thresholds.Config) (modelval.Metrics, []modelval.MetricCheck, error) {
	var m modelval.Metrics

	if len(predictions) == 0 || len(actuals) == 0 {
		return m, nil, core.ErrEmptyInput
	}
	if len(predictions) != len(actuals) {
		return m, nil, core.NewDimensionMismatchError("predictions", len(actuals), len(predictions))
	}

	squaredErrors := make([]float64, len(predictions))
	absErrors := make([]float64, len(predictions))
	for i, pred := range predictions {
		diff := pred - actuals[i]
		squaredErrors[i] = diff * diff
		absErrors[i] = math.Abs(diff)
	}

	m.MSE, _ = stats.Mean(squaredErrors)
	m.RMSE = math.Sqrt(m.MSE)
	m.MAE, _ = stats.Mean(absErrors)

	actualMean, _ := stats.Mean(actuals)
	ssRes := 0.0
	ssTot := 0.0
	for i, actual := range actuals {
		ssRes += squaredErrors[i]
		dev := actual - actualMean
		ssTot += dev * dev
	}

	if ssTot == 0 {
		// Constant ground truth: R2 carries no meaning, report it as undefined
		m.R2Defined = false
	} else {
		m.R2 = 1 - ssRes/ssTot
		m.R2Defined = true
	}

	return m, e.scoreThresholds(m, cfg), nil
}

// scoreThresholds yields one pass/fail entry per configured metric limit.
// An undefined R2 is not comparable, so it produces no check entry.
func (e *Evaluator) scoreThresholds(m modelval.Metrics, cfg *thresholds.Config) []modelval.MetricCheck {
	checks := []modelval.MetricCheck{
		{Name: "rmse", Value: m.RMSE, Threshold: cfg.RMSEThreshold, Passed: m.RMSE <= cfg.RMSEThreshold},
		{Name: "mae", Value: m.MAE, Threshold: cfg.MAEThreshold, Passed: m.MAE <= cfg.MAEThreshold},
	}
	if m.R2Defined {
		checks = append(checks, modelval.MetricCheck{
			Name: "r2", Value: m.R2, Threshold: cfg.R2Threshold, Passed: m.R2 >= cfg.R2Threshold,
		})
	}

	for _, check := range checks {
		if !check.Passed {
			e.logger.Warn("metric %s = %.4f violates threshold %.4f", check.Name, check.Value, check.Threshold)
		}
	}
	return checks
}
