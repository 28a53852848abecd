package agent

import (
	"encoding/json"
	"strings"
)

// parseStructured decodes text into T, first as-is, then by extracting the
// substring between the first '{' and the last '}' to handle models that
// wrap their JSON in prose or markdown fences. Single attempt per stage,
// never a retry. A decode that succeeds but fails the structural check is
// treated the same as a parse failure.
func parseStructured[T any](text string, valid func(*T) bool) (*T, bool) {
	if out, ok := decodeValid[T](text, valid); ok {
		return out, true
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, false
	}
	return decodeValid[T](text[start:end+1], valid)
}

func decodeValid[T any](text string, valid func(*T) bool) (*T, bool) {
	var out T
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, false
	}
	if valid != nil && !valid(&out) {
		return nil, false
	}
	return &out, true
}
