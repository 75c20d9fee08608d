// Package taxonomy builds the in-memory lookup structure the classification
// workflow runs against: ordered unique topics, subtopics per topic, and dot
// point rows per (topic, subtopic), deterministically sorted so that "index N"
// in a dot point prompt always refers to the same row within one request.
package taxonomy

import (
	"sort"

	"hsc-mapper/internal/domain"
)

// preferredTopicOrder is the curriculum-natural topic sequence for NSW HSC
// mathematics. Topics present in the data are emitted in this order first,
// followed by any remaining topics alphabetically, so prompts list topics the
// way the syllabus does rather than in arbitrary DB order.
var preferredTopicOrder = []string{
	"Functions",
	"Trigonometric Functions",
	"Calculus",
	"Exponential and Logarithmic Functions",
	"Statistical Analysis",
	"Financial Mathematics",
	"Proof",
	"Vectors",
	"Complex Numbers",
	"Combinatorics",
	"Mechanics",
}

// BuildIndex builds a domain.TaxonomyIndex from a flat row set. Rows with an
// empty id, topic, subtopic or content are dropped. Returns a
// CONFIGURATION_ERROR when nothing survives filtering.
func BuildIndex(rows []domain.TaxonomyRow) (*domain.TaxonomyIndex, error) {
	dotPoints := make(map[domain.SubtopicKey][]domain.TaxonomyRow)
	subtopicSet := make(map[string]map[string]struct{})

	for _, row := range rows {
		if row.ID == "" || row.Topic == "" || row.Subtopic == "" || row.Content == "" {
			continue
		}
		key := domain.SubtopicKey{Topic: row.Topic, Subtopic: row.Subtopic}
		dotPoints[key] = append(dotPoints[key], row)
		if subtopicSet[row.Topic] == nil {
			subtopicSet[row.Topic] = make(map[string]struct{})
		}
		subtopicSet[row.Topic][row.Subtopic] = struct{}{}
	}

	if len(subtopicSet) == 0 {
		return nil, domain.NewConfigurationError("taxonomy is empty after filtering invalid rows")
	}

	// Deterministic dot point order: sortOrder ascending, id as tiebreak.
	for key := range dotPoints {
		list := dotPoints[key]
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].SortOrder != list[j].SortOrder {
				return list[i].SortOrder < list[j].SortOrder
			}
			return list[i].ID < list[j].ID
		})
		dotPoints[key] = list
	}

	subtopics := make(map[string][]string, len(subtopicSet))
	for topic, set := range subtopicSet {
		names := make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
		sort.Strings(names)
		subtopics[topic] = names
	}

	return &domain.TaxonomyIndex{
		Topics:    orderTopics(subtopicSet),
		Subtopics: subtopics,
		DotPoints: dotPoints,
	}, nil
}

// orderTopics intersects the preferred sequence with the present topics, then
// appends the remainder alphabetically.
func orderTopics(present map[string]map[string]struct{}) []string {
	topics := make([]string, 0, len(present))
	seen := make(map[string]struct{}, len(present))

	for _, topic := range preferredTopicOrder {
		if _, ok := present[topic]; ok {
			topics = append(topics, topic)
			seen[topic] = struct{}{}
		}
	}

	var rest []string
	for topic := range present {
		if _, ok := seen[topic]; !ok {
			rest = append(rest, topic)
		}
	}
	sort.Strings(rest)
	return append(topics, rest...)
}
