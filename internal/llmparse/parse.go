// Package llmparse recovers structure from free-text LLM replies: JSON
// extraction, normalization of historical output shapes, and allow-list
// matching of category answers.
package llmparse

import (
	"encoding/json"
	"strings"
)

// ParseJSON extracts a JSON value from arbitrary model text. It tries, in
// order: a direct parse of the trimmed string, the contents of a fenced code
// block, and the first {...} substring via greedy brace matching. Returns nil
// when all three fail; that is a recoverable "model produced unusable output"
// condition, never an error.
func ParseJSON(raw string) interface{} {
	cleaned := stripThinkBlocks(strings.TrimSpace(raw))

	if v, ok := tryUnmarshal(cleaned); ok {
		return v
	}
	if fenced, ok := extractFencedBlock(cleaned); ok {
		if v, ok := tryUnmarshal(fenced); ok {
			return v
		}
	}
	if braced, ok := extractBracedObject(cleaned); ok {
		if v, ok := tryUnmarshal(braced); ok {
			return v
		}
	}
	return nil
}

func tryUnmarshal(s string) (interface{}, bool) {
	if s == "" {
		return nil, false
	}
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}

// stripThinkBlocks removes a <think>...</think> section, which reasoning
// models emit ahead of the actual answer.
func stripThinkBlocks(s string) string {
	start := strings.Index(s, "<think>")
	if start == -1 {
		return s
	}
	end := strings.Index(s, "</think>")
	if end == -1 || end < start {
		return s
	}
	return strings.TrimSpace(s[:start] + s[end+len("</think>"):])
}

// extractFencedBlock returns the contents of the first ```json or ``` fenced
// code block.
func extractFencedBlock(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start == -1 {
		return "", false
	}
	rest := s[start+3:]
	// Drop an optional language tag on the fence line.
	if nl := strings.Index(rest, "\n"); nl != -1 {
		firstLine := strings.TrimSpace(rest[:nl])
		if firstLine == "json" || firstLine == "" {
			rest = rest[nl+1:]
		}
	}
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// extractBracedObject returns the first-{ to last-} substring.
func extractBracedObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
