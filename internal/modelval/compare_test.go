package modelval

import (
	"math"
	"testing"

	dm "carelens/domain/modelval"
)

func reportWithMetrics(version string, m dm.Metrics) *dm.ValidationReport {
	return &dm.ValidationReport{ModelVersion: version, Metrics: m}
}

func TestCompareVersions_Deltas(t *testing.T) {
	base := reportWithMetrics("2.0.0", dm.Metrics{MSE: 110, RMSE: 10.488, MAE: 8, R2: 0.85, R2Defined: true})
	other := reportWithMetrics("1.0.0", dm.Metrics{MSE: 100, RMSE: 10, MAE: 8, R2: 0.80, R2Defined: true})

	cmp := CompareVersions(base, other)

	if cmp.BaseVersion != "2.0.0" || cmp.CompareVersion != "1.0.0" {
		t.Errorf("version labels wrong: %s vs %s", cmp.BaseVersion, cmp.CompareVersion)
	}

	mse := cmp.Deltas["mse"]
	if math.Abs(mse.Absolute-10) > 1e-9 {
		t.Errorf("expected mse absolute delta 10, got %v", mse.Absolute)
	}
	if !mse.PercentDefined || math.Abs(mse.Percent-10) > 1e-9 {
		t.Errorf("expected mse percent delta 10%%, got %v", mse.Percent)
	}

	mae := cmp.Deltas["mae"]
	if mae.Absolute != 0 || mae.Percent != 0 {
		t.Errorf("unchanged metric should have zero deltas, got %+v", mae)
	}

	if _, ok := cmp.Deltas["r2"]; !ok {
		t.Error("r2 delta expected when both reports define it")
	}
}

func TestCompareVersions_SignificanceBands(t *testing.T) {
	base := reportWithMetrics("2.0.0", dm.Metrics{MSE: 106, RMSE: 112, MAE: 100})
	other := reportWithMetrics("1.0.0", dm.Metrics{MSE: 100, RMSE: 100, MAE: 100})

	cmp := CompareVersions(base, other)

	severity := map[string]string{}
	for _, change := range cmp.SignificantChanges {
		severity[change.Metric] = change.Severity
	}

	if severity["mse"] != "medium" {
		t.Errorf("6%% movement should be medium, got %q", severity["mse"])
	}
	if severity["rmse"] != "high" {
		t.Errorf("12%% movement should be high, got %q", severity["rmse"])
	}
	if _, ok := severity["mae"]; ok {
		t.Error("unchanged metric must not be a significant change")
	}
}

func TestCompareVersions_UndefinedR2Skipped(t *testing.T) {
	base := reportWithMetrics("2.0.0", dm.Metrics{MSE: 100, RMSE: 10, MAE: 8, R2Defined: false})
	other := reportWithMetrics("1.0.0", dm.Metrics{MSE: 100, RMSE: 10, MAE: 8, R2: 0.8, R2Defined: true})

	cmp := CompareVersions(base, other)

	if _, ok := cmp.Deltas["r2"]; ok {
		t.Error("r2 must be skipped when either side leaves it undefined")
	}
}

func TestCompareVersions_ZeroBaselineLeavesPercentUndefined(t *testing.T) {
	base := reportWithMetrics("2.0.0", dm.Metrics{MSE: 50})
	other := reportWithMetrics("1.0.0", dm.Metrics{MSE: 0})

	cmp := CompareVersions(base, other)

	mse := cmp.Deltas["mse"]
	if mse.PercentDefined {
		t.Error("percent change against a zero baseline must be undefined")
	}
	if mse.Absolute != 50 {
		t.Errorf("absolute change is still defined, expected 50, got %v", mse.Absolute)
	}
	for _, change := range cmp.SignificantChanges {
		if change.Metric == "mse" {
			t.Error("an undefined percent cannot be a significant change")
		}
	}
}
