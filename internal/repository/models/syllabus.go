package models

import (
	"database/sql"
	"time"
)

// SyllabusDotPoint maps the syllabus_dot_points table. One row per dot point.
type SyllabusDotPoint struct {
	ID        string        `db:"id"`
	Grade     string        `db:"grade"`
	Subject   string        `db:"subject"`
	Topic     string        `db:"topic"`
	Subtopic  string        `db:"subtopic"`
	Content   string        `db:"content"`
	SortOrder sql.NullInt64 `db:"sort_order"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
	DeletedAt sql.NullTime  `db:"deleted_at"`
}
