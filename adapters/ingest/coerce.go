package ingest

import (
	"math"
	"strconv"
	"strings"

	"carelens/domain/dataset"
)

// Coercer deterministically converts raw cell text into typed values.
// The same input always produces the same Value, so two reads of one file
// build identical datasets.
type Coercer struct {
	normalizeStrings bool
}

// NewCoercer creates a coercer. When normalize is set, string cells are
// trimmed and lowercased, which is what categorical matching expects.
func NewCoercer(normalize bool) *Coercer {
	return &Coercer{normalizeStrings: normalize}
}

// missingTokens are the raw spellings treated as null cells
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"none": {},
	"nan":  {},
}

// Coerce converts one raw cell. Integer parses win over float parses so
// count-like columns keep their integer type.
func (c *Coercer) Coerce(raw string) dataset.Value {
	cleaned := strings.TrimSpace(raw)
	if _, missing := missingTokens[strings.ToLower(cleaned)]; missing {
		return dataset.NewMissingValue()
	}

	if intVal, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		return dataset.NewIntegerValue(intVal)
	}

	if floatVal, err := strconv.ParseFloat(cleaned, 64); err == nil {
		if !math.IsInf(floatVal, 0) && !math.IsNaN(floatVal) {
			return dataset.NewNumericValue(floatVal)
		}
		return dataset.NewMissingValue()
	}

	if c.normalizeStrings {
		cleaned = strings.ToLower(cleaned)
	}
	return dataset.NewStringValue(cleaned)
}
