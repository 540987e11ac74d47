package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"carelens/adapters/ingest"
	"carelens/domain/dataset"
	"carelens/internal"
	"carelens/internal/checks"
	"carelens/internal/modelval"
	"carelens/internal/thresholds"
)

func main() {
	dataPath := flag.String("data", "", "path to a CSV/XLSX dataset to quality-check")
	predictionsPath := flag.String("predictions", "", "path to a CSV/XLSX file with prediction/actual columns")
	modelName := flag.String("model-name", "healthcare_cost_predictor", "model name for the validation report")
	modelVersion := flag.String("model-version", "1.0.0", "model version for the validation report")
	outputType := flag.String("output-type", "charges", "clinical output type for healthcare rules")
	flag.Parse()

	_ = godotenv.Load()
	logger := internal.DefaultLogger.WithComponent("validate")

	if *dataPath == "" && *predictionsPath == "" {
		fmt.Fprintln(os.Stderr, "usage: validate -data insurance.csv [-predictions preds.csv]")
		os.Exit(2)
	}

	cfg, err := thresholds.Load()
	if err != nil {
		logger.Error("invalid threshold configuration: %v", err)
		os.Exit(1)
	}

	if *dataPath != "" {
		if err := runQualityChecks(*dataPath, cfg); err != nil {
			logger.Error("quality checks failed: %v", err)
			os.Exit(1)
		}
	}

	if *predictionsPath != "" {
		if err := runModelValidation(*predictionsPath, *modelName, *modelVersion, *outputType, cfg); err != nil {
			logger.Error("model validation failed: %v", err)
			os.Exit(1)
		}
	}
}

func runQualityChecks(path string, cfg *thresholds.Config) error {
	ds, err := ingest.NewDataReader(path).Read()
	if err != nil {
		return err
	}

	runner := checks.NewRunner(
		checks.NewNullCheck(),
		checks.NewSchemaCheck(dataset.MedicalCostSchema()),
		checks.NewAnomalyCheck(),
	)
	report := runner.Run(ds, cfg)
	return printJSON(report)
}

// runModelValidation expects a file whose header contains "prediction" and
// "actual" columns; every other column is treated as a protected attribute.
// Null cells in the two numeric columns are rejected outright: dropping them
// would shift the sequences out of alignment with each other and with the
// attribute columns.
func runModelValidation(path, modelName, modelVersion, outputType string, cfg *thresholds.Config) error {
	ds, err := ingest.NewDataReader(path).Read()
	if err != nil {
		return err
	}

	predictions, err := ds.CompleteNumericColumn("prediction")
	if err != nil {
		return err
	}
	actuals, err := ds.CompleteNumericColumn("actual")
	if err != nil {
		return err
	}

	attributes := make(map[string][]string)
	for _, column := range ds.Columns() {
		if column == "prediction" || column == "actual" {
			continue
		}
		values, err := ds.StringColumn(column)
		if err != nil {
			continue
		}
		attributes[column] = values
	}

	report, err := modelval.NewValidator().Validate(modelval.Input{
		ModelName:    modelName,
		ModelVersion: modelVersion,
		Predictions:  predictions,
		Actuals:      actuals,
		OutputType:   outputType,
		Attributes:   attributes,
	}, cfg)
	if err != nil {
		return err
	}
	return printJSON(report)
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
