package llmparse

import "strings"

// MatchAllowed resolves a free-text model answer to one canonical entry of a
// fixed allowed set. Tier 1 is an exact case-insensitive match; tier 2 is a
// substring match in either direction, first allowed entry in list order wins.
// Returns "" when nothing matches. Callers must treat that as a hard
// per-question failure and never coerce a label outside the allowed set.
func MatchAllowed(candidate string, allowed []string) string {
	needle := strings.ToLower(strings.TrimSpace(candidate))
	if needle == "" {
		return ""
	}

	for _, entry := range allowed {
		if strings.ToLower(strings.TrimSpace(entry)) == needle {
			return entry
		}
	}

	for _, entry := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(entry))
		if normalized == "" {
			continue
		}
		if strings.Contains(normalized, needle) || strings.Contains(needle, normalized) {
			return entry
		}
	}

	return ""
}
