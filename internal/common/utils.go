package common

import (
	"encoding/json"
	"regexp"
	"strings"
)

// jsonSpanRegex matches the greedy brace-delimited span from the first "{"
// to the last "}" in the text, across newlines. This is intentionally the
// permissive heuristic the model-output contract relies on: prose containing
// stray braces or multiple JSON objects makes the span invalid and the whole
// extraction fails. Known weak point; kept behind this one function so a
// stricter parser can replace it without touching callers.
var jsonSpanRegex = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSON locates an embedded JSON object in free text and parses it.
// Returns nil when no brace-delimited span exists or the span is not valid
// JSON. Never panics.
func ExtractJSON(text string) map[string]interface{} {
	span := jsonSpanRegex.FindString(text)
	if span == "" {
		return nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(span), &obj); err != nil {
		return nil
	}
	return obj
}

// GetStringValue retrieves a trimmed string value from a map, trying each
// key in order and returning the first non-empty value found.
func GetStringValue(data map[string]interface{}, keys ...string) (string, bool) {
	for _, key := range keys {
		if val, ok := data[key]; ok {
			if strVal, ok := val.(string); ok {
				if trimmed := strings.TrimSpace(strVal); trimmed != "" {
					return trimmed, true
				}
			}
		}
	}
	return "", false
}

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}
