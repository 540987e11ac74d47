package modelval

import (
	"errors"
	"testing"

	"carelens/domain/core"
	"carelens/internal/thresholds"
)

func TestHealthcareValidator_HealthyOutputsPass(t *testing.T) {
	// Outputs centered near the expected mean with a realistic spread
	outputs := []float64{8000, 10000, 12000, 13000, 14000, 16000, 18000}

	validation, err := NewHealthcareValidator().Validate(outputs, "charges", thresholds.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !validation.Passed {
		t.Errorf("expected all rules to pass, got %+v", validation.Rules)
	}
	if len(validation.Rules) != 3 {
		t.Errorf("expected 3 rules, got %d", len(validation.Rules))
	}
}

func TestHealthcareValidator_ShiftedDistributionFails(t *testing.T) {
	// Mean ~50000 against an expected 13000 with 5000 tolerance
	outputs := []float64{48000, 50000, 52000}

	validation, err := NewHealthcareValidator().Validate(outputs, "charges", thresholds.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if validation.Passed {
		t.Fatal("a heavily shifted distribution must fail")
	}
	for _, rule := range validation.Rules {
		if rule.Name == "output_distribution_shape" {
			if rule.Passed {
				t.Error("distribution shape rule should fail")
			}
			if p, ok := rule.Details["mean_shift_p"]; !ok || p > 0.05 {
				t.Errorf("expected a significant mean shift p-value, got %v (present=%v)", p, ok)
			}
		}
	}
}

func TestHealthcareValidator_ClinicalRangeViolations(t *testing.T) {
	outputs := []float64{12000, 13000, -500, 250000}

	validation, err := NewHealthcareValidator().Validate(outputs, "charges", thresholds.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, rule := range validation.Rules {
		if rule.Name != "clinical_range" {
			continue
		}
		if rule.Passed {
			t.Error("out-of-range outputs must fail the clinical range rule")
		}
		if rule.Details["violations"] != 2 {
			t.Errorf("expected 2 violations, got %v", rule.Details["violations"])
		}
		if rule.Details["within_range_pct"] != 50 {
			t.Errorf("expected 50%% in range, got %v", rule.Details["within_range_pct"])
		}
	}
}

func TestHealthcareValidator_UnknownOutputTypePassesVacuously(t *testing.T) {
	outputs := []float64{12000, 13000, 14000}

	validation, err := NewHealthcareValidator().Validate(outputs, "readmission_risk", thresholds.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, rule := range validation.Rules {
		if rule.Name == "clinical_range" {
			if !rule.Passed || rule.Details["violations"] != 0 {
				t.Errorf("an unbounded output type passes vacuously, got %+v", rule)
			}
		}
	}
}

func TestHealthcareValidator_RegulatoryCeiling(t *testing.T) {
	cfg := thresholds.Default()
	cfg.BiasRatioMax = 2.5 // above the 2.0 regulatory ceiling

	validation, err := NewHealthcareValidator().Validate([]float64{13000}, "charges", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, rule := range validation.Rules {
		if rule.Name == "regulatory_bounds" && rule.Passed {
			t.Error("a bias ratio cap above the regulatory ceiling must fail")
		}
	}
	if validation.Passed {
		t.Error("overall validation must fail when any rule fails")
	}
}

func TestHealthcareValidator_EmptyOutputsRejected(t *testing.T) {
	_, err := NewHealthcareValidator().Validate(nil, "charges", thresholds.Default())
	if !errors.Is(err, core.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}
