package repository

import (
	"context"
	"fmt"
	"time"

	"hsc-mapper/internal/domain"
	"hsc-mapper/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// GetQuestions implements domain.QuestionRepository. A zero year matches all
// years. The year filter uses two distinct binds rather than repeating one
// placeholder: go-ora does not deduplicate repeated positional binds.
func (a *QuestionDatabaseAdapter) GetQuestions(ctx context.Context, grade string, year int, subject, school string) ([]domain.QuestionRecord, error) {
	query := `SELECT
		id "id",
		grade "grade",
		year "year",
		subject "subject",
		school "school",
		question_number "question_number",
		question_text "question_text",
		topic "topic",
		subtopic "subtopic",
		dot_point "dot_point"
	FROM exam_questions
	WHERE grade = :1
	AND subject = :2
	AND school = :3
	AND (:4 = 0 OR year = :5)
	AND deleted_at IS NULL
	ORDER BY id`

	var modelQuestions []models.ExamQuestion
	if err := a.db.SelectContext(ctx, &modelQuestions, query, grade, subject, school, year, year); err != nil {
		return nil, fmt.Errorf("failed to get exam questions: %w", err)
	}

	records := make([]domain.QuestionRecord, 0, len(modelQuestions))
	for _, m := range modelQuestions {
		records = append(records, toDomainQuestionRecord(&m))
	}
	return records, nil
}

// UpdateQuestionTopic implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) UpdateQuestionTopic(ctx context.Context, id, topic string) error {
	query := `UPDATE exam_questions
	SET topic = :1, updated_at = :2
	WHERE id = :3
	AND deleted_at IS NULL`

	if _, err := a.db.ExecContext(ctx, query, topic, time.Now(), id); err != nil {
		return domain.NewPersistenceError(fmt.Sprintf("failed to update question topic for %s", id), err)
	}
	return nil
}

// UpdateQuestionSubtopicAndDotPoint implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) UpdateQuestionSubtopicAndDotPoint(ctx context.Context, id, subtopic, dotPointText string) error {
	query := `UPDATE exam_questions
	SET subtopic = :1, dot_point = :2, updated_at = :3
	WHERE id = :4
	AND deleted_at IS NULL`

	if _, err := a.db.ExecContext(ctx, query, subtopic, dotPointText, time.Now(), id); err != nil {
		return domain.NewPersistenceError(fmt.Sprintf("failed to update question subtopic/dot point for %s", id), err)
	}
	return nil
}

func toDomainQuestionRecord(m *models.ExamQuestion) domain.QuestionRecord {
	return domain.QuestionRecord{
		ID:             m.ID,
		Topic:          m.Topic.String,
		Subtopic:       m.Subtopic.String,
		DotPoint:       m.DotPoint.String,
		QuestionText:   m.QuestionText.String,
		QuestionNumber: m.QuestionNumber.String,
	}
}
