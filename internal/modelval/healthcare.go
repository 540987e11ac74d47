package modelval

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"carelens/domain/core"
	"carelens/domain/modelval"
	"carelens/internal"
	"carelens/internal/thresholds"
)

// HealthcareValidator applies fixed domain rules to model outputs:
// distribution shape against an expected reference, clinical range bounds,
// and regulatory threshold sanity. Rules are independent of the statistical
// checks but feed the same result contract.
type HealthcareValidator struct {
	logger *internal.Logger
}

// NewHealthcareValidator creates a healthcare rule validator
func NewHealthcareValidator() *HealthcareValidator {
	return &HealthcareValidator{logger: internal.DefaultLogger.WithComponent("HealthcareValidator")}
}

// Validate runs every rule over the model outputs. outputType selects the
// clinical bound table (e.g. "charges"). Empty outputs carry no signal and
// are rejected.
func (v *HealthcareValidator) Validate(outputs []float64, outputType string, cfg *thresholds.Config) (modelval.HealthcareValidation, error) {
	if len(outputs) == 0 {
		return modelval.HealthcareValidation{}, core.ErrEmptyInput
	}

	rules := []modelval.RuleResult{
		v.distributionShape(outputs, cfg),
		v.clinicalRange(outputs, outputType, cfg),
		v.regulatoryBounds(cfg),
	}

	passed := true
	for _, rule := range rules {
		if !rule.Passed {
			passed = false
			v.logger.Warn("healthcare rule %s failed", rule.Name)
		}
	}

	return modelval.HealthcareValidation{Rules: rules, Passed: passed}, nil
}

// distributionShape compares the output mean and spread against the expected
// reference distribution. Deviation beyond the configured multiple of the
// expected std fails the rule. The mean-shift p-value (normal approximation)
// is included so downstream consumers can judge the deviation's weight.
func (v *HealthcareValidator) distributionShape(outputs []float64, cfg *thresholds.Config) modelval.RuleResult {
	exp := cfg.ExpectedOutput
	actualMean, _ := stats.Mean(outputs)
	actualStd, _ := stats.StandardDeviationPopulation(outputs)

	tolerance := exp.ToleranceMul * exp.Std
	meanDeviation := math.Abs(actualMean - exp.Mean)
	stdDeviation := math.Abs(actualStd - exp.Std)

	meanShiftP := 1.0
	if exp.Std > 0 {
		z := (actualMean - exp.Mean) / (exp.Std / math.Sqrt(float64(len(outputs))))
		meanShiftP = 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))
	}

	return modelval.RuleResult{
		Name:   "output_distribution_shape",
		Passed: meanDeviation <= tolerance && stdDeviation <= tolerance,
		Details: map[string]float64{
			"expected_mean": exp.Mean,
			"actual_mean":   actualMean,
			"expected_std":  exp.Std,
			"actual_std":    actualStd,
			"tolerance":     tolerance,
			"mean_shift_p":  meanShiftP,
			"sample_size":   float64(len(outputs)),
		},
	}
}

// clinicalRange applies the clinical bound table to the outputs themselves.
// An output type without a configured bound passes vacuously with the
// violation count reported as zero.
func (v *HealthcareValidator) clinicalRange(outputs []float64, outputType string, cfg *thresholds.Config) modelval.RuleResult {
	bound, ok := cfg.OutputBounds[outputType]
	if !ok {
		bound, ok = cfg.HardBounds[outputType]
	}

	result := modelval.RuleResult{
		Name:    "clinical_range",
		Passed:  true,
		Details: map[string]float64{"total_outputs": float64(len(outputs))},
	}
	if !ok {
		result.Details["violations"] = 0
		return result
	}

	violations := 0
	for _, out := range outputs {
		if !bound.Contains(out) {
			violations++
		}
	}

	result.Passed = violations == 0
	result.Details["violations"] = float64(violations)
	result.Details["within_range_pct"] = float64(len(outputs)-violations) / float64(len(outputs)) * 100
	result.Details["bound_min"] = bound.Min
	result.Details["bound_max"] = bound.Max
	return result
}

// regulatoryBounds verifies the configured limits themselves: the bias
// ratio cap must sit under the regulatory hard ceiling.
func (v *HealthcareValidator) regulatoryBounds(cfg *thresholds.Config) modelval.RuleResult {
	return modelval.RuleResult{
		Name:   "regulatory_bounds",
		Passed: cfg.BiasRatioMax <= thresholds.BiasRatioCeiling,
		Details: map[string]float64{
			"configured_bias_ratio_max": cfg.BiasRatioMax,
			"regulatory_ceiling":        thresholds.BiasRatioCeiling,
		},
	}
}
