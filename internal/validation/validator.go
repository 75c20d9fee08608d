package validation

import (
	"strings"

	"hsc-mapper/internal/domain"
	"hsc-mapper/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateMapSyllabusRequest validates the mapping batch request. Grade and
// subject are always required (the taxonomy is loaded per selector even in
// test mode); school is required only for a real batch, since test mode never
// touches the question set.
func (v *Validator) ValidateMapSyllabusRequest(req *dto.MapSyllabusRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if grade := strings.TrimSpace(req.Grade); grade == "" {
		errors = append(errors, domain.NewMissingFieldError("grade"))
	} else if !isNumeric(grade) {
		errors = append(errors, domain.NewInvalidFormatError("grade", req.Grade))
	}
	if strings.TrimSpace(req.Subject) == "" {
		errors = append(errors, domain.NewMissingFieldError("subject"))
	}
	if strings.TrimSpace(req.WorkflowTestInput) == "" && strings.TrimSpace(req.School) == "" {
		errors = append(errors, domain.NewMissingFieldError("school"))
	}
	if req.Year != 0 && (req.Year < 2000 || req.Year > 2100) {
		errors = append(errors, domain.NewOutOfRangeError("year", req.Year, 2000, 2100))
	}

	return errors
}

// ValidateTopicTreeQuery validates the taxonomy listing query parameters.
func (v *Validator) ValidateTopicTreeQuery(grade, subject string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if g := strings.TrimSpace(grade); g == "" {
		errors = append(errors, domain.NewMissingFieldError("grade"))
	} else if !isNumeric(g) {
		errors = append(errors, domain.NewInvalidFormatError("grade", grade))
	}
	if strings.TrimSpace(subject) == "" {
		errors = append(errors, domain.NewMissingFieldError("subject"))
	}

	return errors
}

// isNumeric reports whether s is all ASCII digits. Grade selectors are year
// levels ("11", "12"), never free text.
func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
