package modelval

import (
	"carelens/domain/core"
	"carelens/domain/modelval"
	"carelens/internal"
	"carelens/internal/thresholds"
)

// Input carries everything one validation run needs: parallel sequences of
// predictions and ground truth, optional protected attribute values aligned
// to the same records, and model identity metadata.
type Input struct {
	ModelName    string
	ModelVersion string
	Predictions  []float64
	Actuals      []float64
	OutputType   string              // selects the clinical bound table; empty skips healthcare rules
	Attributes   map[string][]string // protected attribute name -> per-record values
}

// Validator orchestrates the metrics evaluator, healthcare rules and bias
// analyzer into one validation report. It holds no state across runs.
type Validator struct {
	evaluator  *Evaluator
	healthcare *HealthcareValidator
	bias       *Analyzer
	logger     *internal.Logger
}

// NewValidator creates a model validator
func NewValidator() *Validator {
	return &Validator{
		evaluator:  NewEvaluator(),
		healthcare: NewHealthcareValidator(),
		bias:       NewAnalyzer(),
		logger:     internal.DefaultLogger.WithComponent("ModelValidator"),
	}
}

// Validate produces a full validation report. Structural failures (empty or
// misaligned sequences) abort the run; threshold breaches never do — they
// are findings inside a successfully returned report.
func (v *Validator) Validate(in Input, cfg *thresholds.Config) (*modelval.ValidationReport, error) {
	metrics, metricChecks, err := v.evaluator.Evaluate(in.Predictions, in.Actuals, cfg)
	if err != nil {
		return nil, err
	}

	report := &modelval.ValidationReport{
		ID:               core.ReportID(core.NewID()),
		ModelName:        in.ModelName,
		ModelVersion:     in.ModelVersion,
		Timestamp:        core.Now(),
		Metrics:          metrics,
		MetricChecks:     metricChecks,
		BiasAnalysis:     map[string]modelval.AttributeBias{},
		ComplianceStatus: modelval.Compliant,
	}

	if in.OutputType != "" {
		hv, err := v.healthcare.Validate(in.Predictions, in.OutputType, cfg)
		if err != nil {
			return nil, err
		}
		report.HealthcareValidation = &hv
	}

	if len(in.Attributes) > 0 {
		bias, err := v.bias.Analyze(in.Predictions, in.Actuals, in.Attributes, cfg)
		if err != nil {
			return nil, err
		}
		report.BiasAnalysis = bias

		for _, attr := range bias {
			if attr.Flagged {
				report.ComplianceStatus = modelval.NonCompliant
				break
			}
		}
	}

	v.logger.Info("validated %s v%s: compliance=%s, performance_passed=%t",
		in.ModelName, in.ModelVersion, report.ComplianceStatus, report.PerformancePassed())

	return report, nil
}
