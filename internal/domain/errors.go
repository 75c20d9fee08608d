package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Request validation
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Taxonomy errors
	CodeConfiguration ErrorCode = "CONFIGURATION_ERROR"

	// Classification errors, recoverable per-question at the batch level
	CodeEmptyModelOutput          ErrorCode = "EMPTY_MODEL_OUTPUT"
	CodeInvalidClassifierOutput   ErrorCode = "INVALID_CLASSIFIER_OUTPUT"
	CodeInvalidSpecialistOutput   ErrorCode = "INVALID_SPECIALIST_OUTPUT"
	CodeCategoryOutsideAllowedSet ErrorCode = "CATEGORY_OUTSIDE_ALLOWED_SET"
	CodeNoTopicsAvailable         ErrorCode = "NO_TOPICS_AVAILABLE"
	CodeNoSubtopicsForTopic       ErrorCode = "NO_SUBTOPICS_FOR_TOPIC"
	CodeNoDotPointsForSubtopic    ErrorCode = "NO_DOT_POINTS_FOR_SUBTOPIC"

	// Infrastructure errors
	CodePersistence     ErrorCode = "PERSISTENCE_ERROR"
	CodeLLMServiceError ErrorCode = "LLM_SERVICE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// NewConfigurationError signals an unusable taxonomy (empty after filtering
// invalid rows). Fatal for the whole batch request, nothing is attempted.
func NewConfigurationError(message string) *DomainError {
	return NewError(CodeConfiguration, message, nil)
}

func NewEmptyModelOutputError(stage string) *DomainError {
	return NewError(CodeEmptyModelOutput, fmt.Sprintf("%s: model returned empty output", stage), nil)
}

func NewInvalidClassifierOutputError(stage string, raw string) *DomainError {
	e := NewError(CodeInvalidClassifierOutput, fmt.Sprintf("%s: could not parse a category from model output", stage), nil)
	e.Context = map[string]interface{}{"raw": raw}
	return e
}

func NewInvalidSpecialistOutputError(raw string) *DomainError {
	e := NewError(CodeInvalidSpecialistOutput, "dot point mapper: could not parse specialist output", nil)
	e.Context = map[string]interface{}{"raw": raw}
	return e
}

func NewCategoryOutsideAllowedSetError(stage string, category string) *DomainError {
	return NewError(CodeCategoryOutsideAllowedSet, fmt.Sprintf("%s: model answer %q is not in the allowed set", stage, category), nil)
}

func NewNoTopicsAvailableError() *DomainError {
	return NewError(CodeNoTopicsAvailable, "taxonomy index has no topics", nil)
}

func NewNoSubtopicsForTopicError(topic string) *DomainError {
	return NewError(CodeNoSubtopicsForTopic, fmt.Sprintf("no subtopics under topic %q", topic), nil)
}

func NewNoDotPointsForSubtopicError(topic, subtopic string) *DomainError {
	return NewError(CodeNoDotPointsForSubtopic, fmt.Sprintf("no dot points under %q / %q", topic, subtopic), nil)
}

func NewPersistenceError(message string, cause error) *DomainError {
	return NewError(CodePersistence, message, cause)
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(CodeLLMServiceError, "failed to get completion from LLM service", cause)
}

// ValidationError represents a single field-level request validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of field validation failures
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e[0].Error())
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %q", value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("value %d out of range [%d, %d]", value, min, max)}
}
