package domain

// SpecialistOutput is the canonical parsed result of the dot point mapping
// stage. DotPointIndices are positions into the candidate list the prompt was
// built from, deduplicated and in ascending order; they are NOT bounds-checked
// here because the valid bound depends on the candidate list in scope at call
// time (the batch runner enforces it against the actual row list).
type SpecialistOutput struct {
	Topic           string
	Subtopic        string
	DotPointIndices []int
}

// WorkflowResult is the output of one full classification run for one
// question. The raw model texts of all three stages are retained for
// auditability.
type WorkflowResult struct {
	Topic         string
	Subtopic      string
	Specialist    SpecialistOutput
	TopicRaw      string
	SubtopicRaw   string
	SpecialistRaw string
}

// MappingFailure records one question that could not be classified or saved.
type MappingFailure struct {
	QuestionID     string `json:"question_id"`
	QuestionNumber string `json:"question_number,omitempty"`
	Reason         string `json:"reason"`
}

// DebugTrace captures raw and parsed model output for one record, for
// operator diagnosis. Losing a trace never affects batch counts.
type DebugTrace struct {
	QuestionID     string            `json:"question_id"`
	QuestionNumber string            `json:"question_number,omitempty"`
	Outcome        string            `json:"outcome"`
	Reason         string            `json:"reason,omitempty"`
	TopicRaw       string            `json:"topic_raw,omitempty"`
	SubtopicRaw    string            `json:"subtopic_raw,omitempty"`
	SpecialistRaw  string            `json:"specialist_raw,omitempty"`
	Parsed         *SpecialistOutput `json:"parsed,omitempty"`
}

// BatchOutcome aggregates one batch run.
type BatchOutcome struct {
	TotalExam     int
	Eligible      int
	AlreadyMapped int
	Updated       int
	Skipped       int
	Failed        int
	Failures      []MappingFailure
	DebugTraces   []DebugTrace
}
