package dto

import "hsc-mapper/internal/domain"

// MapSyllabusRequest is the request body for the dev mapping route.
// @Description Selects the question set to classify and the batch options.
type MapSyllabusRequest struct {
	Grade   string `json:"grade"`
	Subject string `json:"subject"`
	School  string `json:"school"`
	Year    int    `json:"year,omitempty"`
	// OnlyUnmapped defaults to true when absent.
	OnlyUnmapped *bool `json:"only_unmapped,omitempty"`
	IncludeDebug bool  `json:"include_debug,omitempty"`
	// WorkflowTestInput, when set, bypasses storage and runs one
	// classification over this text instead of a batch.
	WorkflowTestInput string `json:"workflow_test_input,omitempty"`
}

// OnlyUnmappedOrDefault resolves the tri-state flag.
func (r *MapSyllabusRequest) OnlyUnmappedOrDefault() bool {
	if r.OnlyUnmapped == nil {
		return true
	}
	return *r.OnlyUnmapped
}

// BatchTotals mirrors domain.BatchOutcome counts in the API response.
type BatchTotals struct {
	TotalExam     int `json:"total_exam"`
	Eligible      int `json:"eligible"`
	AlreadyMapped int `json:"already_mapped"`
	Updated       int `json:"updated"`
	Skipped       int `json:"skipped"`
	Failed        int `json:"failed"`
}

// MapSyllabusResponse is the batch-mode response.
type MapSyllabusResponse struct {
	Success           bool                    `json:"success"`
	Grade             string                  `json:"grade"`
	Subject           string                  `json:"subject"`
	School            string                  `json:"school"`
	Totals            BatchTotals             `json:"totals"`
	Failures          []domain.MappingFailure `json:"failures"`
	DebugModelOutputs []domain.DebugTrace     `json:"debug_model_outputs,omitempty"`
}

// SpecialistOutputDTO is the parsed dot point mapper result in API shape.
type SpecialistOutputDTO struct {
	Topic           string `json:"topic"`
	Subtopic        string `json:"subtopic"`
	DotPointIndices []int  `json:"dot_point_indices"`
}

// MappingPreviewEntry resolves one selected index back to the actual dot
// point for human inspection in test mode.
type MappingPreviewEntry struct {
	Index      int    `json:"index"`
	DotPointID string `json:"dot_point_id"`
	Content    string `json:"content"`
}

// WorkflowTestResponse is the test-mode response: the resolved labels, the
// raw text of all three model stages, and a mapping preview.
type WorkflowTestResponse struct {
	Success        bool                  `json:"success"`
	Topic          string                `json:"topic"`
	Subtopic       string                `json:"subtopic"`
	TopicRaw       string                `json:"topic_raw"`
	SubtopicRaw    string                `json:"subtopic_raw"`
	SpecialistRaw  string                `json:"specialist_raw"`
	Parsed         SpecialistOutputDTO   `json:"parsed"`
	MappingPreview []MappingPreviewEntry `json:"mapping_preview"`
}

// TopicTreeResponse lists the taxonomy index's topic/subtopic tree.
type TopicTreeResponse struct {
	Grade   string       `json:"grade"`
	Subject string       `json:"subject"`
	Topics  []TopicEntry `json:"topics"`
}

type TopicEntry struct {
	Topic     string   `json:"topic"`
	Subtopics []string `json:"subtopics"`
}
