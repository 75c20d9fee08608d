package models

import (
	"database/sql"
	"time"
)

// ExamQuestion maps the exam_questions table. Topic, Subtopic and DotPoint
// are NULL until the mapping workflow fills them in.
type ExamQuestion struct {
	ID             string         `db:"id"`
	Grade          string         `db:"grade"`
	Year           sql.NullInt64  `db:"year"`
	Subject        string         `db:"subject"`
	School         string         `db:"school"`
	QuestionNumber sql.NullString `db:"question_number"`
	QuestionText   sql.NullString `db:"question_text"`
	Topic          sql.NullString `db:"topic"`
	Subtopic       sql.NullString `db:"subtopic"`
	DotPoint       sql.NullString `db:"dot_point"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      sql.NullTime   `db:"deleted_at"`
}
