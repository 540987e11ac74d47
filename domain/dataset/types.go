package dataset

import (
	"fmt"

	"carelens/domain/core"
)

// Value represents a typed scalar cell with deterministic coercion
type Value struct {
	Type       ValueType `json:"type"`
	StringVal  *string   `json:"string_val,omitempty"`
	NumericVal *float64  `json:"numeric_val,omitempty"`
	IntegerVal *int64    `json:"integer_val,omitempty"`
	IsMissing  bool      `json:"is_missing"`
}

// ValueType defines the storage type for cell values
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumeric ValueType = "numeric"
	ValueTypeInteger ValueType = "integer"
	ValueTypeMissing ValueType = "missing"
)

// NewStringValue creates a string value
func NewStringValue(s string) Value {
	if s == "" {
		return NewMissingValue()
	}
	return Value{Type: ValueTypeString, StringVal: &s}
}

// NewNumericValue creates a numeric value
func NewNumericValue(n float64) Value {
	return Value{Type: ValueTypeNumeric, NumericVal: &n}
}

// NewIntegerValue creates an integer value
func NewIntegerValue(n int64) Value {
	return Value{Type: ValueTypeInteger, IntegerVal: &n}
}

// NewMissingValue creates a missing (null) value
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing, IsMissing: true}
}

// Float returns the value as a float64. Integer values are widened.
func (v Value) Float() (float64, bool) {
	switch v.Type {
	case ValueTypeNumeric:
		if v.NumericVal != nil {
			return *v.NumericVal, true
		}
	case ValueTypeInteger:
		if v.IntegerVal != nil {
			return float64(*v.IntegerVal), true
		}
	}
	return 0, false
}

// Text returns the value as a string when it is string-typed
func (v Value) Text() (string, bool) {
	if v.Type == ValueTypeString && v.StringVal != nil {
		return *v.StringVal, true
	}
	return "", false
}

// Display renders any value for diagnostics
func (v Value) Display() string {
	switch v.Type {
	case ValueTypeString:
		return *v.StringVal
	case ValueTypeNumeric:
		return fmt.Sprintf("%g", *v.NumericVal)
	case ValueTypeInteger:
		return fmt.Sprintf("%d", *v.IntegerVal)
	default:
		return "<missing>"
	}
}

// Record is one row: a mapping from column name to a typed scalar
type Record map[string]Value

// Dataset is an ordered sequence of uniform records.
// Every record carries exactly the same column set; NewDataset enforces this.
type Dataset struct {
	Name    string   `json:"name"`
	columns []string // stable column order, taken from the first record
	records []Record
}

// NewDataset materializes records into a Dataset, verifying column uniformity.
// A ragged record set is a data load failure, not a quality finding.
func NewDataset(name string, columns []string, records []Record) (*Dataset, error) {
	colSet := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := colSet[c]; dup {
			return nil, core.NewDataLoadError(fmt.Sprintf("duplicate column %q", c))
		}
		colSet[c] = struct{}{}
	}

	for i, rec := range records {
		if len(rec) != len(columns) {
			return nil, core.NewDataLoadError(
				fmt.Sprintf("record %d has %d columns, expected %d", i, len(rec), len(columns)))
		}
		for c := range rec {
			if _, ok := colSet[c]; !ok {
				return nil, core.NewDataLoadError(
					fmt.Sprintf("record %d has unknown column %q", i, c))
			}
		}
	}

	cols := make([]string, len(columns))
	copy(cols, columns)

	return &Dataset{Name: name, columns: cols, records: records}, nil
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// IsEmpty reports whether the dataset holds no records
func (d *Dataset) IsEmpty() bool {
	return len(d.records) == 0
}

// Columns returns the column names in stable order
func (d *Dataset) Columns() []string {
	cols := make([]string, len(d.columns))
	copy(cols, d.columns)
	return cols
}

// HasColumn reports whether the dataset carries the named column
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Record returns the record at index i
func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// Column returns every value in the named column, in record order
func (d *Dataset) Column(name string) ([]Value, error) {
	if !d.HasColumn(name) {
		return nil, core.NewColumnNotFoundError(name)
	}
	values := make([]Value, len(d.records))
	for i, rec := range d.records {
		values[i] = rec[name]
	}
	return values, nil
}

// NumericColumn returns the non-missing numeric values of a column.
// Missing cells are skipped; a string cell makes the column non-numeric.
func (d *Dataset) NumericColumn(name string) ([]float64, error) {
	values, err := d.Column(name)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v.IsMissing {
			continue
		}
		f, ok := v.Float()
		if !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrNonNumeric, name)
		}
		out = append(out, f)
	}
	return out, nil
}

// CompleteNumericColumn returns the numeric values of a column, requiring
// every cell to be present. Use it where values must stay aligned with other
// columns row for row; a null cell here would silently shift the sequence.
func (d *Dataset) CompleteNumericColumn(name string) ([]float64, error) {
	values, err := d.Column(name)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(values))
	for i, v := range values {
		if v.IsMissing {
			return nil, fmt.Errorf("%w: %s at record %d", core.ErrMissingCell, name, i)
		}
		f, ok := v.Float()
		if !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrNonNumeric, name)
		}
		out[i] = f
	}
	return out, nil
}

// StringColumn renders every cell of a column as display text, in record
// order. Useful for grouping by categorical attributes regardless of the
// underlying cell type.
func (d *Dataset) StringColumn(name string) ([]string, error) {
	values, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Display()
	}
	return out, nil
}

// NullCount returns the number of missing cells in the named column
func (d *Dataset) NullCount(name string) (int, error) {
	values, err := d.Column(name)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, v := range values {
		if v.IsMissing {
			count++
		}
	}
	return count, nil
}
