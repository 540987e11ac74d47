package modelval

import (
	"fmt"
	"strconv"

	"github.com/montanaflynn/stats"

	"carelens/domain/core"
	"carelens/domain/modelval"
	"carelens/internal"
	"carelens/internal/thresholds"
)

// Analyzer partitions predictions by protected attribute value and computes
// per-group statistics plus cross-group disparity metrics. It reports
// magnitude only; it never infers causation.
type Analyzer struct {
	logger *internal.Logger
}

// NewAnalyzer creates a bias analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{logger: internal.DefaultLogger.WithComponent("BiasAnalyzer")}
}

// Analyze evaluates every protected attribute independently. Attribute
// sequences must align with the prediction records; a length mismatch is
// fatal for the analysis.
func (a *Analyzer) Analyze(predictions, actuals []float64, attributes map[string][]string, cfg *thresholds.Config) (map[string]modelval.AttributeBias, error) {
	if len(predictions) != len(actuals) {
		return nil, core.NewDimensionMismatchError("actuals", len(predictions), len(actuals))
	}

	results := make(map[string]modelval.AttributeBias, len(attributes))
	for attribute, values := range attributes {
		if len(values) != len(predictions) {
			return nil, core.NewDimensionMismatchError("attribute "+attribute, len(predictions), len(values))
		}
		results[attribute] = a.analyzeAttribute(attribute, predictions, actuals, values, cfg)
	}
	return results, nil
}

// analyzeAttribute partitions records by raw attribute value. Ages are
// grouped by exact value unless a bin width is configured; exact grouping
// keeps granularity at the cost of noisy small groups, which are marked
// low-confidence.
func (a *Analyzer) analyzeAttribute(attribute string, predictions, actuals []float64, values []string, cfg *thresholds.Config) modelval.AttributeBias {
	groupPreds := make(map[string][]float64)
	groupActuals := make(map[string][]float64)

	for i, raw := range values {
		key := a.groupKey(attribute, raw, cfg)
		groupPreds[key] = append(groupPreds[key], predictions[i])
		groupActuals[key] = append(groupActuals[key], actuals[i])
	}

	binaryTarget := isBinary(actuals)

	groups := make(map[string]modelval.GroupStats, len(groupPreds))
	for key, preds := range groupPreds {
		groups[key] = a.groupStats(preds, groupActuals[key], binaryTarget, cfg)
	}

	disparity := a.disparity(groups)
	flagged := disparity.RatioDefined && disparity.Ratio > cfg.BiasRatioMax
	if flagged {
		a.logger.Warn("attribute %s disparity ratio %.3f exceeds cap %.3f",
			attribute, disparity.Ratio, cfg.BiasRatioMax)
	}

	return modelval.AttributeBias{
		Attribute: attribute,
		Groups:    groups,
		Disparity: disparity,
		Flagged:   flagged,
	}
}

func (a *Analyzer) groupStats(preds, actuals []float64, binaryTarget bool, cfg *thresholds.Config) modelval.GroupStats {
	meanPred, _ := stats.Mean(preds)
	stdPred, _ := stats.StandardDeviationPopulation(preds)
	outcomeRate, _ := stats.Mean(actuals)

	// False positive rate only means something for a binary classification
	// target; this is a regression setting by default, so it stays zero.
	fpr := 0.0
	if binaryTarget {
		falsePositives := 0
		negatives := 0
		for i, actual := range actuals {
			if actual == 0 {
				negatives++
				if preds[i] == 1 {
					falsePositives++
				}
			}
		}
		if negatives > 0 {
			fpr = float64(falsePositives) / float64(negatives)
		}
	}

	return modelval.GroupStats{
		Size:              len(preds),
		MeanPrediction:    meanPred,
		StdPrediction:     stdPred,
		OutcomeRate:       outcomeRate,
		PredictionRate:    meanPred,
		FalsePositiveRate: fpr,
		LowConfidence:     len(preds) < cfg.MinGroupSize,
	}
}

// disparity finds the groups with extreme mean predictions. When the
// minimum mean is zero the ratio is undefined rather than infinite.
// Ties break to the lexicographically smaller key so the labels are stable
// across runs despite map iteration order.
func (a *Analyzer) disparity(groups map[string]modelval.GroupStats) modelval.DisparityMetric {
	var d modelval.DisparityMetric
	first := true

	for key, g := range groups {
		if first {
			d.MaxGroup, d.MinGroup = key, key
			first = false
			continue
		}
		maxMean := groups[d.MaxGroup].MeanPrediction
		if g.MeanPrediction > maxMean || (g.MeanPrediction == maxMean && key < d.MaxGroup) {
			d.MaxGroup = key
		}
		minMean := groups[d.MinGroup].MeanPrediction
		if g.MeanPrediction < minMean || (g.MeanPrediction == minMean && key < d.MinGroup) {
			d.MinGroup = key
		}
	}
	if first {
		return d // no groups at all
	}

	maxMean := groups[d.MaxGroup].MeanPrediction
	minMean := groups[d.MinGroup].MeanPrediction
	d.Difference = maxMean - minMean
	if minMean != 0 {
		d.Ratio = maxMean / minMean
		d.RatioDefined = true
	}
	return d
}

// groupKey stringifies the raw attribute value. Numeric ages are binned
// only when a bin width is configured.
func (a *Analyzer) groupKey(attribute, raw string, cfg *thresholds.Config) string {
	if attribute != "age" || cfg.AgeBinWidth <= 0 {
		return raw
	}
	age, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	lo := int(age) / cfg.AgeBinWidth * cfg.AgeBinWidth
	return fmt.Sprintf("%d-%d", lo, lo+cfg.AgeBinWidth-1)
}

func isBinary(values []float64) bool {
	for _, v := range values {
		if v != 0 && v != 1 {
			return false
		}
	}
	return len(values) > 0
}
