package repository

import (
	"context"
	"fmt"
	"strings"

	"hsc-mapper/internal/domain"
	"hsc-mapper/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// TaxonomyDatabaseAdapter implements domain.TaxonomyRepository using sqlx.DB
type TaxonomyDatabaseAdapter struct {
	db *sqlx.DB
}

// NewTaxonomyDatabaseAdapter creates a new instance of TaxonomyDatabaseAdapter
func NewTaxonomyDatabaseAdapter(db *sqlx.DB) domain.TaxonomyRepository {
	return &TaxonomyDatabaseAdapter{db: db}
}

// GetDotPoints implements domain.TaxonomyRepository
func (a *TaxonomyDatabaseAdapter) GetDotPoints(ctx context.Context, grades []string, subject string) ([]domain.TaxonomyRow, error) {
	if len(grades) == 0 {
		return nil, fmt.Errorf("at least one grade is required")
	}

	// Oracle positional binds; the grade list length is request-dependent.
	placeholders := make([]string, len(grades))
	args := make([]interface{}, 0, len(grades)+1)
	for i, grade := range grades {
		placeholders[i] = fmt.Sprintf(":%d", i+1)
		args = append(args, grade)
	}
	args = append(args, subject)

	query := fmt.Sprintf(`SELECT
		id "id",
		grade "grade",
		subject "subject",
		topic "topic",
		subtopic "subtopic",
		content "content",
		sort_order "sort_order"
	FROM syllabus_dot_points
	WHERE grade IN (%s)
	AND subject = :%d
	AND deleted_at IS NULL`, strings.Join(placeholders, ", "), len(grades)+1)

	var modelRows []models.SyllabusDotPoint
	if err := a.db.SelectContext(ctx, &modelRows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get syllabus dot points: %w", err)
	}

	rows := make([]domain.TaxonomyRow, 0, len(modelRows))
	for _, m := range modelRows {
		rows = append(rows, toDomainTaxonomyRow(&m))
	}
	return rows, nil
}

func toDomainTaxonomyRow(m *models.SyllabusDotPoint) domain.TaxonomyRow {
	sortOrder := domain.SortOrderMax
	if m.SortOrder.Valid {
		sortOrder = int(m.SortOrder.Int64)
	}
	return domain.TaxonomyRow{
		ID:        m.ID,
		Topic:     m.Topic,
		Subtopic:  m.Subtopic,
		Content:   m.Content,
		SortOrder: sortOrder,
	}
}
