package services

import (
	"encoding/json"
	"strings"
)

// extractJSON unmarshals model output into v. Models asked for JSON
// still sometimes wrap the object in prose or code fences, so a failed
// strict parse falls back to the substring between the first '{' and
// the last '}'. Returns false when no parseable object is found; the
// caller decides what the raw text means then.
func extractJSON(raw string, v any) bool {
	trimmed := strings.TrimSpace(raw)
	if json.Unmarshal([]byte(trimmed), v) == nil {
		return true
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return false
	}
	return json.Unmarshal([]byte(trimmed[start:end+1]), v) == nil
}
