package domain

import "context"

// TaxonomyRow is one syllabus dot point as stored in the syllabus table.
// Rows with an empty ID, Topic, Subtopic or Content are dropped before indexing.
type TaxonomyRow struct {
	ID        string
	Topic     string
	Subtopic  string
	Content   string
	SortOrder int
}

// SortOrderMax is the sentinel used when a row carries no explicit sort order;
// such rows sort after every explicitly ordered row.
const SortOrderMax = int(^uint(0) >> 1)

// SubtopicKey identifies one (topic, subtopic) pair in the index.
type SubtopicKey struct {
	Topic    string
	Subtopic string
}

// TaxonomyIndex is the read-only lookup structure built once per request from
// a taxonomy row set. It is never mutated after construction, so it is safe to
// share without locking.
type TaxonomyIndex struct {
	// Topics in preferred-then-alphabetical order.
	Topics []string
	// Subtopics per topic, alphabetical.
	Subtopics map[string][]string
	// Dot point rows per (topic, subtopic), sorted by SortOrder then ID.
	DotPoints map[SubtopicKey][]TaxonomyRow
}

// SubtopicsFor returns the ordered subtopic list for a topic.
func (idx *TaxonomyIndex) SubtopicsFor(topic string) []string {
	return idx.Subtopics[topic]
}

// DotPointsFor returns the ordered dot point rows under (topic, subtopic).
func (idx *TaxonomyIndex) DotPointsFor(topic, subtopic string) []TaxonomyRow {
	return idx.DotPoints[SubtopicKey{Topic: topic, Subtopic: subtopic}]
}

// TaxonomyRepository is the port for loading syllabus dot point rows.
type TaxonomyRepository interface {
	// GetDotPoints returns all dot point rows for the given grades and subject.
	GetDotPoints(ctx context.Context, grades []string, subject string) ([]TaxonomyRow, error)
}
