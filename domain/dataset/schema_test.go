package dataset

import "testing"

func TestNewSchema_RejectsDuplicates(t *testing.T) {
	_, err := NewSchema(
		ColumnSpec{Name: "age", Type: ValueTypeInteger},
		ColumnSpec{Name: "age", Type: ValueTypeNumeric},
	)
	if err == nil {
		t.Fatal("duplicate column declarations must be rejected")
	}
}

func TestColumnSpec_AllowsIsCaseInsensitive(t *testing.T) {
	spec := ColumnSpec{Name: "sex", AllowedValues: []string{"male", "female"}}

	for _, v := range []string{"male", "MALE", "Female"} {
		if !spec.Allows(v) {
			t.Errorf("expected %q to be allowed", v)
		}
	}
	if spec.Allows("unknown") {
		t.Error("unknown must not be allowed")
	}
}

func TestColumnSpec_EmptyAllowedSetAllowsEverything(t *testing.T) {
	spec := ColumnSpec{Name: "region"}
	if !spec.Allows("anything") {
		t.Error("a spec with no allowed set is unconstrained")
	}
}

func TestColumnSpec_Accepts(t *testing.T) {
	intSpec := ColumnSpec{Name: "age", Type: ValueTypeInteger}
	numSpec := ColumnSpec{Name: "bmi", Type: ValueTypeNumeric}
	strSpec := ColumnSpec{Name: "sex", Type: ValueTypeString}

	cases := []struct {
		name string
		spec ColumnSpec
		v    Value
		want bool
	}{
		{"integer takes integer", intSpec, NewIntegerValue(30), true},
		{"integer takes whole float", intSpec, NewNumericValue(30.0), true},
		{"integer rejects fractional float", intSpec, NewNumericValue(30.5), false},
		{"integer rejects string", intSpec, NewStringValue("thirty"), false},
		{"numeric takes float", numSpec, NewNumericValue(22.5), true},
		{"numeric takes integer", numSpec, NewIntegerValue(22), true},
		{"numeric rejects string", numSpec, NewStringValue("x"), false},
		{"string takes string", strSpec, NewStringValue("male"), true},
		{"string rejects number", strSpec, NewNumericValue(1), false},
		{"missing always accepted", intSpec, NewMissingValue(), true},
	}

	for _, tc := range cases {
		if got := tc.spec.Accepts(tc.v); got != tc.want {
			t.Errorf("%s: Accepts = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMedicalCostSchema(t *testing.T) {
	schema := MedicalCostSchema()
	if schema == nil {
		t.Fatal("schema must build")
	}

	for _, col := range []string{"age", "sex", "bmi", "children", "smoker", "region", "charges"} {
		spec, ok := schema.Spec(col)
		if !ok {
			t.Errorf("schema must declare %s", col)
			continue
		}
		if !spec.Required {
			t.Errorf("%s should be required", col)
		}
	}
	if schema.Declares("favorite_color") {
		t.Error("undeclared columns must not be reported as declared")
	}
}
