package validation

import (
	"testing"

	"hsc-mapper/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMapSyllabusRequest_Valid(t *testing.T) {
	v := NewValidator()
	errs := v.ValidateMapSyllabusRequest(&dto.MapSyllabusRequest{
		Grade: "12", Subject: "Mathematics Extension 1", School: "North High", Year: 2023,
	})
	assert.Empty(t, errs)
}

func TestValidateMapSyllabusRequest_MissingFields(t *testing.T) {
	v := NewValidator()
	errs := v.ValidateMapSyllabusRequest(&dto.MapSyllabusRequest{})
	require.Len(t, errs, 3)

	fields := []string{errs[0].Field, errs[1].Field, errs[2].Field}
	assert.Contains(t, fields, "grade")
	assert.Contains(t, fields, "subject")
	assert.Contains(t, fields, "school")
}

func TestValidateMapSyllabusRequest_SchoolOptionalInTestMode(t *testing.T) {
	v := NewValidator()
	errs := v.ValidateMapSyllabusRequest(&dto.MapSyllabusRequest{
		Grade: "12", Subject: "Maths",
		WorkflowTestInput: "What is the resultant vector?",
	})
	assert.Empty(t, errs)
}

func TestValidateMapSyllabusRequest_YearRange(t *testing.T) {
	v := NewValidator()

	// Zero means all years and is always fine.
	errs := v.ValidateMapSyllabusRequest(&dto.MapSyllabusRequest{
		Grade: "12", Subject: "Maths", School: "North High",
	})
	assert.Empty(t, errs)

	errs = v.ValidateMapSyllabusRequest(&dto.MapSyllabusRequest{
		Grade: "12", Subject: "Maths", School: "North High", Year: 1995,
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "year", errs[0].Field)
}

func TestValidateMapSyllabusRequest_WhitespaceOnlyIsMissing(t *testing.T) {
	v := NewValidator()
	errs := v.ValidateMapSyllabusRequest(&dto.MapSyllabusRequest{
		Grade: "  ", Subject: "Maths", School: "North High",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "grade", errs[0].Field)
}

func TestValidateMapSyllabusRequest_GradeMustBeNumeric(t *testing.T) {
	v := NewValidator()
	errs := v.ValidateMapSyllabusRequest(&dto.MapSyllabusRequest{
		Grade: "twelve", Subject: "Maths", School: "North High",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "grade", errs[0].Field)
	assert.Contains(t, errs[0].Message, "invalid format")
}

func TestValidateTopicTreeQuery(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateTopicTreeQuery("11", "Maths"))

	errs := v.ValidateTopicTreeQuery("", "")
	require.Len(t, errs, 2)
	assert.Equal(t, "grade", errs[0].Field)
	assert.Equal(t, "subject", errs[1].Field)
}
