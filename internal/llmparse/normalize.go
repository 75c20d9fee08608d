package llmparse

import (
	"sort"
	"strconv"
	"strings"

	"hsc-mapper/internal/domain"
)

// Legacy key spellings tolerated in model output. Old prompts and replayed
// records still produce old shapes, so these alias lists are part of the
// parser contract, consulted in priority order.
var (
	containerKeys = []string{"output", "result", "response", "data"}
	topicKeys     = []string{"topic", "Topic", "main_topic", "mainTopic"}
	subtopicKeys  = []string{"subtopic", "Subtopic", "category"}
	dotPointKeys  = []string{
		"Syllabus dot points",
		"syllabus dot points",
		"syllabus_dot_points",
		"SyllabusDotPoints",
		"dot_points",
		"dotPoints",
	}
)

// NormalizeCategory extracts the "category" string from a parsed classifier
// reply. The payload may sit at the top level or be wrapped one level deep
// under a legacy container key. Returns "" when neither location has it.
func NormalizeCategory(parsed interface{}) string {
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return ""
	}
	if cat := stringField(obj, "category"); cat != "" {
		return cat
	}
	for _, key := range containerKeys {
		if nested, ok := obj[key].(map[string]interface{}); ok {
			if cat := stringField(nested, "category"); cat != "" {
				return cat
			}
		}
	}
	return ""
}

// NormalizeSpecialist converts a parsed dot point mapper reply into the
// canonical SpecialistOutput, tolerating the documented key-name drift.
// Returns nil when topic or subtopic is missing or empty after trimming.
func NormalizeSpecialist(parsed interface{}) *domain.SpecialistOutput {
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return nil
	}

	topic := firstStringField(obj, topicKeys)
	subtopic := firstStringField(obj, subtopicKeys)
	if topic == "" || subtopic == "" {
		return nil
	}

	var indices []int
	for _, key := range dotPointKeys {
		if raw, ok := obj[key]; ok {
			indices = parseIndexList(raw)
			break
		}
	}

	return &domain.SpecialistOutput{
		Topic:           topic,
		Subtopic:        subtopic,
		DotPointIndices: indices,
	}
}

// parseIndexList accepts a JSON array of numbers or numeric strings, or a
// comma-separated string, and returns the deduplicated non-negative integers
// in ascending order. Entries that are not valid non-negative integers are
// discarded silently; one bad entry never fails the whole parse.
func parseIndexList(raw interface{}) []int {
	var parts []interface{}
	switch v := raw.(type) {
	case []interface{}:
		parts = v
	case string:
		for _, p := range strings.Split(v, ",") {
			parts = append(parts, p)
		}
	default:
		return nil
	}

	seen := make(map[int]struct{})
	for _, part := range parts {
		idx, ok := asNonNegativeInt(part)
		if !ok {
			continue
		}
		seen[idx] = struct{}{}
	}

	if len(seen) == 0 {
		return nil
	}
	indices := make([]int, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

func asNonNegativeInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		idx := int(n)
		if float64(idx) != n || idx < 0 {
			return 0, false
		}
		return idx, true
	case string:
		idx, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil || idx < 0 {
			return 0, false
		}
		return idx, true
	default:
		return 0, false
	}
}

func stringField(obj map[string]interface{}, key string) string {
	if s, ok := obj[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func firstStringField(obj map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if s := stringField(obj, key); s != "" {
			return s
		}
	}
	return ""
}
