package api

import (
	"encoding/json"
	"math"

	"carelens/domain/dataset"
	mv "carelens/domain/modelval"
)

// datasetRequest is the inline dataset payload for quality check runs
type datasetRequest struct {
	Name    string                   `json:"name"`
	Columns []string                 `json:"columns"`
	Records []map[string]interface{} `json:"records"`
}

// runChecksRequest asks for a quality run over an inline dataset
type runChecksRequest struct {
	Dataset datasetRequest `json:"dataset"`
}

// validateModelRequest carries one model validation run
type validateModelRequest struct {
	ModelName    string              `json:"model_name"`
	ModelVersion string              `json:"model_version"`
	Predictions  []float64           `json:"predictions"`
	Actuals      []float64           `json:"actuals"`
	OutputType   string              `json:"output_type,omitempty"`
	Attributes   map[string][]string `json:"attributes,omitempty"`
}

// compareVersionsRequest contrasts two inline validation reports
type compareVersionsRequest struct {
	Base    mv.ValidationReport `json:"base"`
	Compare mv.ValidationReport `json:"compare"`
}

// errorResponse is the uniform error body
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// toDataset converts the JSON payload into a domain dataset. JSON numbers
// arrive as float64; whole numbers are narrowed back to integers so integer
// schema columns validate as expected.
func (r datasetRequest) toDataset() (*dataset.Dataset, error) {
	records := make([]dataset.Record, len(r.Records))
	for i, row := range r.Records {
		record := make(dataset.Record, len(r.Columns))
		for _, column := range r.Columns {
			raw, ok := row[column]
			if !ok {
				record[column] = dataset.NewMissingValue()
				continue
			}
			record[column] = valueFromJSON(raw)
		}
		records[i] = record
	}
	return dataset.NewDataset(r.Name, r.Columns, records)
}

func valueFromJSON(raw interface{}) dataset.Value {
	switch v := raw.(type) {
	case nil:
		return dataset.NewMissingValue()
	case string:
		return dataset.NewStringValue(v)
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return dataset.NewIntegerValue(int64(v))
		}
		return dataset.NewNumericValue(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return dataset.NewIntegerValue(i)
		}
		if f, err := v.Float64(); err == nil {
			return dataset.NewNumericValue(f)
		}
		return dataset.NewMissingValue()
	case bool:
		if v {
			return dataset.NewIntegerValue(1)
		}
		return dataset.NewIntegerValue(0)
	default:
		return dataset.NewMissingValue()
	}
}
