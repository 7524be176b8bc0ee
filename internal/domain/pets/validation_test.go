package pets

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawObject(t *testing.T, s string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestValidateCreate_Valid(t *testing.T) {
	in, err := ValidateCreate(rawObject(t, `{"name":"  Rex ","species":"Dog","age":3,"owner_name":"Ana","extra":true}`))
	require.NoError(t, err)
	assert.Equal(t, CreateInput{Name: "Rex", Species: "Dog", Age: 3, OwnerName: "Ana"}, in)
}

func TestValidateCreate_Violations(t *testing.T) {
	long := strings.Repeat("a", MaxTextLength+1)

	cases := []struct {
		name  string
		body  string
		field string
		msg   string
	}{
		{"missing name", `{"species":"Dog","age":1,"owner_name":"Ana"}`, FieldName, "The name field is required."},
		{"null species", `{"name":"Rex","species":null,"age":1,"owner_name":"Ana"}`, FieldSpecies, "The species field is required."},
		{"empty owner", `{"name":"Rex","species":"Dog","age":1,"owner_name":""}`, FieldOwnerName, "The owner name field is required."},
		{"name number", `{"name":12,"species":"Dog","age":1,"owner_name":"Ana"}`, FieldName, "The name field must be a string."},
		{"name too long", `{"name":"` + long + `","species":"Dog","age":1,"owner_name":"Ana"}`, FieldName, "The name field must not be greater than 255 characters."},
		{"age word", `{"name":"Rex","species":"Dog","age":"four","owner_name":"Ana"}`, FieldAge, "The age field must be an integer."},
		{"age fraction", `{"name":"Rex","species":"Dog","age":3.5,"owner_name":"Ana"}`, FieldAge, "The age field must be an integer."},
		{"age fraction string", `{"name":"Rex","species":"Dog","age":"4.0","owner_name":"Ana"}`, FieldAge, "The age field must be an integer."},
		{"age huge exponent", `{"name":"Rex","species":"Dog","age":1e300,"owner_name":"Ana"}`, FieldAge, "The age field must be an integer."},
		{"age bool", `{"name":"Rex","species":"Dog","age":true,"owner_name":"Ana"}`, FieldAge, "The age field must be an integer."},
		{"age empty string", `{"name":"Rex","species":"Dog","age":"","owner_name":"Ana"}`, FieldAge, "The age field is required."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateCreate(rawObject(t, tc.body))

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Violations, 1)
			assert.Equal(t, tc.field, verr.Violations[0].Field)
			assert.Equal(t, tc.msg, verr.Violations[0].Message)
		})
	}
}

func TestValidateCreate_AcceptsEdgeValues(t *testing.T) {
	exact := strings.Repeat("é", MaxTextLength)

	in, err := ValidateCreate(rawObject(t, `{"name":"`+exact+`","species":"Dog","age":"12","owner_name":"Ana"}`))
	require.NoError(t, err)
	assert.Equal(t, exact, in.Name)
	assert.Equal(t, 12, in.Age)

	in, err = ValidateCreate(rawObject(t, `{"name":"Rex","species":"Dog","age":0,"owner_name":"Ana"}`))
	require.NoError(t, err)
	assert.Zero(t, in.Age)
}

func TestValidateCreate_IntegralNumbers(t *testing.T) {
	for body, want := range map[string]int{
		`4.0`:   4,
		`1e2`:   100,
		`-0.0`:  0,
		`2.5e1`: 25,
	} {
		in, err := ValidateCreate(rawObject(t, `{"name":"Rex","species":"Dog","age":`+body+`,"owner_name":"Ana"}`))
		require.NoError(t, err, body)
		assert.Equal(t, want, in.Age, body)
	}
}

func TestValidatePatch(t *testing.T) {
	p, err := ValidatePatch(rawObject(t, `{}`))
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())

	p, err = ValidatePatch(rawObject(t, `{"age":4}`))
	require.NoError(t, err)
	require.NotNil(t, p.Age)
	assert.Equal(t, 4, *p.Age)
	assert.Nil(t, p.Name)

	_, err = ValidatePatch(rawObject(t, `{"name":null}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string][]string{"name": {"The name field is required."}}, verr.Fields())
}

func TestValidate_OptionalNullIsAbsent(t *testing.T) {
	rules := []FieldRule{{Field: "nickname", Type: TypeString, MaxLength: 10}}

	values, violations := Validate(rawObject(t, `{"nickname":null}`), rules, ModeCreate)
	assert.Empty(t, violations)
	assert.Empty(t, values)
}

func TestValidationError_Message(t *testing.T) {
	one := &ValidationError{Violations: []Violation{{Field: "a", Message: "A."}}}
	assert.Equal(t, "A.", one.Error())

	two := &ValidationError{Violations: []Violation{{Field: "a", Message: "A."}, {Field: "b", Message: "B."}}}
	assert.Equal(t, "A. (and 1 more error)", two.Error())

	_, err := ValidateCreate(rawObject(t, `{}`))
	assert.EqualError(t, err, "The name field is required. (and 3 more errors)")
}
