package taxonomy

import (
	"testing"

	"hsc-mapper/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id, topic, subtopic, content string, sortOrder int) domain.TaxonomyRow {
	return domain.TaxonomyRow{ID: id, Topic: topic, Subtopic: subtopic, Content: content, SortOrder: sortOrder}
}

func TestBuildIndex_TopicOrdering(t *testing.T) {
	rows := []domain.TaxonomyRow{
		row("dp1", "Ancient Topic", "A", "content a", 1),
		row("dp2", "Vectors", "Introduction to vectors", "content b", 1),
		row("dp3", "Calculus", "Differentiation", "content c", 1),
		row("dp4", "Bespoke Topic", "B", "content d", 1),
	}

	idx, err := BuildIndex(rows)
	require.NoError(t, err)

	// Preferred topics first (only those present), remainder alphabetical.
	assert.Equal(t, []string{"Calculus", "Vectors", "Ancient Topic", "Bespoke Topic"}, idx.Topics)
}

func TestBuildIndex_DotPointSorting(t *testing.T) {
	rows := []domain.TaxonomyRow{
		row("dp-c", "Vectors", "Vector operations", "third", 5),
		row("dp-b", "Vectors", "Vector operations", "second", 2),
		row("dp-a", "Vectors", "Vector operations", "first", 2),
		row("dp-d", "Vectors", "Vector operations", "last", domain.SortOrderMax),
	}

	idx, err := BuildIndex(rows)
	require.NoError(t, err)

	dotPoints := idx.DotPointsFor("Vectors", "Vector operations")
	require.Len(t, dotPoints, 4)
	// sortOrder ascending, id tiebreak, sentinel last.
	assert.Equal(t, "dp-a", dotPoints[0].ID)
	assert.Equal(t, "dp-b", dotPoints[1].ID)
	assert.Equal(t, "dp-c", dotPoints[2].ID)
	assert.Equal(t, "dp-d", dotPoints[3].ID)
}

func TestBuildIndex_Idempotent(t *testing.T) {
	rows := []domain.TaxonomyRow{
		row("dp2", "Vectors", "Vector operations", "b", 1),
		row("dp1", "Vectors", "Vector operations", "a", 1),
		row("dp3", "Vectors", "Projectile motion", "c", 1),
	}

	first, err := BuildIndex(rows)
	require.NoError(t, err)
	second, err := BuildIndex(rows)
	require.NoError(t, err)

	assert.Equal(t, first.Topics, second.Topics)
	assert.Equal(t, first.Subtopics, second.Subtopics)
	assert.Equal(t, first.DotPoints, second.DotPoints)
}

func TestBuildIndex_SubtopicsAlphabetical(t *testing.T) {
	rows := []domain.TaxonomyRow{
		row("dp1", "Calculus", "Integration", "a", 1),
		row("dp2", "Calculus", "Differentiation", "b", 1),
		row("dp3", "Calculus", "Applications of calculus", "c", 1),
	}

	idx, err := BuildIndex(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"Applications of calculus", "Differentiation", "Integration"}, idx.SubtopicsFor("Calculus"))
}

func TestBuildIndex_DropsInvalidRows(t *testing.T) {
	rows := []domain.TaxonomyRow{
		row("", "Vectors", "Vector operations", "no id", 1),
		row("dp1", "", "Vector operations", "no topic", 1),
		row("dp2", "Vectors", "", "no subtopic", 1),
		row("dp3", "Vectors", "Vector operations", "", 1),
		row("dp4", "Vectors", "Vector operations", "kept", 1),
	}

	idx, err := BuildIndex(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"Vectors"}, idx.Topics)
	require.Len(t, idx.DotPointsFor("Vectors", "Vector operations"), 1)
	assert.Equal(t, "dp4", idx.DotPointsFor("Vectors", "Vector operations")[0].ID)
}

func TestBuildIndex_EmptyAfterFiltering(t *testing.T) {
	rows := []domain.TaxonomyRow{
		row("", "", "", "", 0),
	}

	_, err := BuildIndex(rows)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeConfiguration, domainErr.Code)
}

func TestBuildIndex_EmptyInput(t *testing.T) {
	_, err := BuildIndex(nil)
	require.Error(t, err)
}
