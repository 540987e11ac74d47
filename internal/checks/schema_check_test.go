package checks

import (
	"testing"

	"carelens/domain/dataset"
	"carelens/domain/quality"
	"carelens/internal/thresholds"
)

func demographicSchema(t *testing.T) *dataset.Schema {
	t.Helper()
	schema, err := dataset.NewSchema(
		dataset.ColumnSpec{Name: "age", Type: dataset.ValueTypeInteger, Required: true},
		dataset.ColumnSpec{Name: "sex", Type: dataset.ValueTypeString, Required: true, AllowedValues: []string{"male", "female"}},
		dataset.ColumnSpec{Name: "bmi", Type: dataset.ValueTypeNumeric, Required: true},
	)
	if err != nil {
		t.Fatalf("failed to build schema: %v", err)
	}
	return schema
}

func demoRecord(age int64, sex string, bmi float64) dataset.Record {
	return dataset.Record{
		"age": dataset.NewIntegerValue(age),
		"sex": dataset.NewStringValue(sex),
		"bmi": dataset.NewNumericValue(bmi),
	}
}

func TestSchemaCheck_MatchingDatasetPasses(t *testing.T) {
	ds := testDataset(t, []string{"age", "sex", "bmi"}, []dataset.Record{
		demoRecord(30, "male", 22.5),
		demoRecord(52, "FEMALE", 28.0), // categorical matching is case-insensitive
	})

	result := NewSchemaCheck(demographicSchema(t)).Run(ds, thresholds.Default())

	if result.Status != quality.StatusPassed {
		t.Errorf("expected passed, got %s with issues %+v", result.Status, result.Issues)
	}
}

func TestSchemaCheck_MissingRequiredColumnFails(t *testing.T) {
	ds := testDataset(t, []string{"age", "sex"}, []dataset.Record{
		{"age": dataset.NewIntegerValue(30), "sex": dataset.NewStringValue("male")},
	})

	result := NewSchemaCheck(demographicSchema(t)).Run(ds, thresholds.Default())

	if result.Status != quality.StatusFailed {
		t.Fatalf("expected failed, got %s", result.Status)
	}

	missing := 0
	for _, issue := range result.Issues {
		if issue.Type == quality.IssueMissingColumn {
			missing++
			if issue.Column != "bmi" {
				t.Errorf("expected missing column bmi, got %s", issue.Column)
			}
		}
	}
	if missing != 1 {
		t.Errorf("expected exactly one missing_column issue, got %d", missing)
	}
}

func TestSchemaCheck_UnexpectedColumnWarns(t *testing.T) {
	ds := testDataset(t, []string{"age", "sex", "bmi", "favorite_color"}, []dataset.Record{
		{
			"age":            dataset.NewIntegerValue(30),
			"sex":            dataset.NewStringValue("male"),
			"bmi":            dataset.NewNumericValue(22.5),
			"favorite_color": dataset.NewStringValue("blue"),
		},
	})

	result := NewSchemaCheck(demographicSchema(t)).Run(ds, thresholds.Default())

	if result.Status != quality.StatusWarning {
		t.Errorf("undeclared extra column should warn, got %s", result.Status)
	}
	if len(result.Issues) != 1 || result.Issues[0].Type != quality.IssueUnexpectedColumn {
		t.Errorf("expected one unexpected_column issue, got %+v", result.Issues)
	}
}

func TestSchemaCheck_TypeMismatchFails(t *testing.T) {
	ds := testDataset(t, []string{"age", "sex", "bmi"}, []dataset.Record{
		{
			"age": dataset.NewStringValue("thirty"), // not coercible to integer
			"sex": dataset.NewStringValue("male"),
			"bmi": dataset.NewNumericValue(22.5),
		},
	})

	result := NewSchemaCheck(demographicSchema(t)).Run(ds, thresholds.Default())

	if result.Status != quality.StatusFailed {
		t.Fatalf("expected failed, got %s", result.Status)
	}
	found := false
	for _, issue := range result.Issues {
		if issue.Type == quality.IssueTypeMismatch && issue.Column == "age" && issue.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a type_mismatch issue on age, got %+v", result.Issues)
	}
}

func TestSchemaCheck_InvalidCategoryFails(t *testing.T) {
	ds := testDataset(t, []string{"age", "sex", "bmi"}, []dataset.Record{
		demoRecord(30, "unknown", 22.5),
	})

	result := NewSchemaCheck(demographicSchema(t)).Run(ds, thresholds.Default())

	if result.Status != quality.StatusFailed {
		t.Fatalf("expected failed, got %s", result.Status)
	}
	if result.Issues[0].Type != quality.IssueInvalidCategory {
		t.Errorf("expected invalid_category, got %s", result.Issues[0].Type)
	}
}

func TestSchemaCheck_NullCellsAreNotTypeMismatches(t *testing.T) {
	ds := testDataset(t, []string{"age", "sex", "bmi"}, []dataset.Record{
		{
			"age": dataset.NewMissingValue(),
			"sex": dataset.NewStringValue("female"),
			"bmi": dataset.NewNumericValue(24.0),
		},
	})

	result := NewSchemaCheck(demographicSchema(t)).Run(ds, thresholds.Default())

	if result.Status != quality.StatusPassed {
		t.Errorf("nullness is the null check's concern; expected passed, got %s", result.Status)
	}
}
