package domain

import "context"

// QuestionRecord is one exam question to classify. Topic, Subtopic and
// DotPoint hold any existing mapping; a record with a non-empty Subtopic or
// DotPoint counts as already mapped when only-unmapped filtering is on.
type QuestionRecord struct {
	ID             string
	Topic          string
	Subtopic       string
	DotPoint       string
	QuestionText   string
	QuestionNumber string
}

// Mapped reports whether the record already carries a syllabus mapping.
func (q *QuestionRecord) Mapped() bool {
	return q.Subtopic != "" || q.DotPoint != ""
}

// QuestionRepository is the port for reading exam questions and writing
// classification results back, one record at a time.
type QuestionRepository interface {
	GetQuestions(ctx context.Context, grade string, year int, subject, school string) ([]QuestionRecord, error)
	UpdateQuestionTopic(ctx context.Context, id, topic string) error
	UpdateQuestionSubtopicAndDotPoint(ctx context.Context, id, subtopic, dotPointText string) error
}
