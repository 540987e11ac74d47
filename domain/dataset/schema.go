package dataset

import (
	"strings"

	"carelens/domain/core"
)

// ColumnSpec declares the expected shape of one column
type ColumnSpec struct {
	Name          string    `json:"name"`
	Type          ValueType `json:"type"`
	Required      bool      `json:"required"`
	AllowedValues []string  `json:"allowed_values,omitempty"` // categorical set, matched case-insensitively
}

// Schema is the expected column set for a dataset
type Schema struct {
	Columns []ColumnSpec `json:"columns"`
}

// NewSchema builds a schema, rejecting duplicate column declarations
func NewSchema(columns ...ColumnSpec) (*Schema, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if c.Name == "" {
			return nil, core.ErrInvalidSchema
		}
		if _, dup := seen[c.Name]; dup {
			return nil, core.ErrInvalidSchema
		}
		seen[c.Name] = struct{}{}
	}
	return &Schema{Columns: columns}, nil
}

// Spec returns the declaration for a column, if any
func (s *Schema) Spec(name string) (ColumnSpec, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// Declares reports whether the schema declares the named column
func (s *Schema) Declares(name string) bool {
	_, ok := s.Spec(name)
	return ok
}

// Allows reports whether a categorical value is in the allowed set.
// Matching is case-insensitive. A spec with no allowed set allows everything.
func (c ColumnSpec) Allows(value string) bool {
	if len(c.AllowedValues) == 0 {
		return true
	}
	for _, allowed := range c.AllowedValues {
		if strings.EqualFold(allowed, value) {
			return true
		}
	}
	return false
}

// Accepts reports whether a cell value is coercible to the declared type.
// Missing cells are always accepted; nullness is the null check's concern.
func (c ColumnSpec) Accepts(v Value) bool {
	if v.IsMissing {
		return true
	}
	switch c.Type {
	case ValueTypeNumeric:
		_, ok := v.Float()
		return ok
	case ValueTypeInteger:
		// A numeric cell holding a whole number still satisfies an integer column
		if v.Type == ValueTypeInteger {
			return true
		}
		if f, ok := v.Float(); ok {
			return f == float64(int64(f))
		}
		return false
	case ValueTypeString:
		return v.Type == ValueTypeString
	default:
		return false
	}
}

// MedicalCostSchema describes the Medical Cost Personal dataset the service
// ships against: demographic columns plus the insurance charge outcome.
func MedicalCostSchema() *Schema {
	schema, _ := NewSchema(
		ColumnSpec{Name: "age", Type: ValueTypeInteger, Required: true},
		ColumnSpec{Name: "sex", Type: ValueTypeString, Required: true, AllowedValues: []string{"male", "female"}},
		ColumnSpec{Name: "bmi", Type: ValueTypeNumeric, Required: true},
		ColumnSpec{Name: "children", Type: ValueTypeInteger, Required: true},
		ColumnSpec{Name: "smoker", Type: ValueTypeString, Required: true, AllowedValues: []string{"yes", "no"}},
		ColumnSpec{Name: "region", Type: ValueTypeString, Required: true, AllowedValues: []string{"northeast", "northwest", "southeast", "southwest"}},
		ColumnSpec{Name: "charges", Type: ValueTypeNumeric, Required: true},
	)
	return schema
}
